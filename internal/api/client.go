// internal/api/client.go
//
// Typed HTTP client for the scheduling backend's conflict endpoints. The
// backend is the single source of truth for conflict state: every mutation
// here returns the server's view and the caller refetches dependent data
// instead of patching local copies.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medroster/conflictdeck/internal/conflict"
)

const defaultTimeout = 15 * time.Second

// Error is a backend failure. The message is surfaced to the operator
// verbatim, never swallowed or rewritten.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client talks to the conflict API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ClientOption customizes client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Page is one page of the conflict list.
type Page struct {
	Items    []conflict.Conflict `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Pages    int                 `json:"pages"`
}

// ResolveRequest applies one suggestion to a conflict.
type ResolveRequest struct {
	SuggestionID string `json:"suggestion_id"`
	Notes        string `json:"notes,omitempty"`
}

// ManualResolveRequest resolves a conflict with hand-built changes.
type ManualResolveRequest struct {
	Method  conflict.ResolutionMethod   `json:"method"`
	Changes []conflict.ResolutionChange `json:"changes"`
	Notes   string                      `json:"notes,omitempty"`
}

// StatusUpdateRequest moves a conflict to a new lifecycle status.
type StatusUpdateRequest struct {
	Status conflict.Status `json:"status"`
	Notes  string          `json:"notes,omitempty"`
}

// BatchResolveRequest applies one resolution method to many conflicts.
type BatchResolveRequest struct {
	ConflictIDs       []string                  `json:"conflict_ids"`
	ResolutionMethod  conflict.ResolutionMethod `json:"resolution_method"`
	ApplySuggestionID string                    `json:"apply_suggestion_id,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
}

// BatchIgnoreRequest marks many conflicts ignored in one call.
type BatchIgnoreRequest struct {
	ConflictIDs []string `json:"conflict_ids"`
	Notes       string   `json:"notes,omitempty"`
}

// BatchItemResult is the backend's outcome for one conflict in a batch.
type BatchItemResult struct {
	ConflictID string             `json:"conflict_id"`
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Resolution *conflict.Conflict `json:"resolution,omitempty"`
}

// BatchResponse is the backend's reply to a batch mutation.
type BatchResponse struct {
	Results []BatchItemResult `json:"results"`
}

// DetectRequest asks the backend to run detection over a window.
type DetectRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DetectResponse reports what a detection run found.
type DetectResponse struct {
	Detected int `json:"detected"`
	New      int `json:"new,omitempty"`
}

// ValidateAssignmentRequest checks a prospective assignment for conflicts
// before it is saved. Transport for sibling scheduling features.
type ValidateAssignmentRequest struct {
	PersonID     string `json:"person_id"`
	AssignmentID string `json:"assignment_id,omitempty"`
	BlockID      string `json:"block_id,omitempty"`
	Date         string `json:"date"`
	Session      string `json:"session,omitempty"`
}

// ValidateAssignmentResponse lists the conflicts a prospective assignment
// would create.
type ValidateAssignmentResponse struct {
	Valid     bool                `json:"valid"`
	Conflicts []conflict.Conflict `json:"conflicts,omitempty"`
}

// ListConflicts fetches one page of the conflict list using the canonical
// query produced by the filter engine.
func (c *Client) ListConflicts(ctx context.Context, query url.Values) (Page, error) {
	var page Page
	err := c.do(ctx, http.MethodGet, "/conflicts", query, nil, &page)
	return page, err
}

// GetConflict fetches one conflict's detail.
func (c *Client) GetConflict(ctx context.Context, id string) (conflict.Conflict, error) {
	var out conflict.Conflict
	err := c.do(ctx, http.MethodGet, "/conflicts/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// Suggestions fetches the unordered resolution suggestions for a conflict.
func (c *Client) Suggestions(ctx context.Context, id string) ([]conflict.ResolutionSuggestion, error) {
	var out []conflict.ResolutionSuggestion
	err := c.do(ctx, http.MethodGet, "/conflicts/"+url.PathEscape(id)+"/suggestions", nil, nil, &out)
	return out, err
}

// Resolve applies a suggestion; the returned conflict is the server's
// post-resolution state.
func (c *Client) Resolve(ctx context.Context, id string, req ResolveRequest) (conflict.Conflict, error) {
	var out conflict.Conflict
	err := c.do(ctx, http.MethodPost, "/conflicts/"+url.PathEscape(id)+"/resolve", nil, req, &out)
	return out, err
}

// ResolveManual resolves a conflict with caller-provided changes.
func (c *Client) ResolveManual(ctx context.Context, id string, req ManualResolveRequest) (conflict.Conflict, error) {
	var out conflict.Conflict
	err := c.do(ctx, http.MethodPost, "/conflicts/"+url.PathEscape(id)+"/resolve-manual", nil, req, &out)
	return out, err
}

// UpdateStatus moves a conflict to a new lifecycle status.
func (c *Client) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (conflict.Conflict, error) {
	var out conflict.Conflict
	err := c.do(ctx, http.MethodPut, "/conflicts/"+url.PathEscape(id)+"/status", nil, req, &out)
	return out, err
}

// Override submits an audited manual override for a conflict.
func (c *Client) Override(ctx context.Context, id string, ovr conflict.ManualOverride) (conflict.Conflict, error) {
	var out conflict.Conflict
	err := c.do(ctx, http.MethodPost, "/conflicts/"+url.PathEscape(id)+"/override", nil, ovr, &out)
	return out, err
}

// History fetches a conflict's append-only audit trail, oldest first.
func (c *Client) History(ctx context.Context, id string) ([]conflict.HistoryEntry, error) {
	var out []conflict.HistoryEntry
	err := c.do(ctx, http.MethodGet, "/conflicts/"+url.PathEscape(id)+"/history", nil, nil, &out)
	return out, err
}

// Patterns fetches the server-computed recurring-conflict aggregates.
func (c *Client) Patterns(ctx context.Context) ([]conflict.Pattern, error) {
	var out []conflict.Pattern
	err := c.do(ctx, http.MethodGet, "/conflicts/patterns", nil, nil, &out)
	return out, err
}

// Statistics fetches population-level counts, optionally bounded by a date
// range (YYYY-MM-DD).
func (c *Client) Statistics(ctx context.Context, startDate, endDate string) (conflict.Statistics, error) {
	query := url.Values{}
	if strings.TrimSpace(startDate) != "" {
		query.Set("start_date", startDate)
	}
	if strings.TrimSpace(endDate) != "" {
		query.Set("end_date", endDate)
	}
	var out conflict.Statistics
	err := c.do(ctx, http.MethodGet, "/conflicts/statistics", query, nil, &out)
	return out, err
}

// BatchResolve applies one resolution method to the given conflicts and
// returns per-item outcomes. Partial failure is a normal response, not an
// error.
func (c *Client) BatchResolve(ctx context.Context, req BatchResolveRequest) (BatchResponse, error) {
	var out BatchResponse
	err := c.do(ctx, http.MethodPost, "/conflicts/batch-resolve", nil, req, &out)
	return out, err
}

// BatchIgnore marks the given conflicts ignored with per-item outcomes.
func (c *Client) BatchIgnore(ctx context.Context, req BatchIgnoreRequest) (BatchResponse, error) {
	var out BatchResponse
	err := c.do(ctx, http.MethodPost, "/conflicts/batch-ignore", nil, req, &out)
	return out, err
}

// Detect triggers a detection run over a date window.
func (c *Client) Detect(ctx context.Context, req DetectRequest) (DetectResponse, error) {
	var out DetectResponse
	err := c.do(ctx, http.MethodPost, "/conflicts/detect", nil, req, &out)
	return out, err
}

// ValidateAssignment checks a prospective assignment for conflicts.
func (c *Client) ValidateAssignment(ctx context.Context, req ValidateAssignmentRequest) (ValidateAssignmentResponse, error) {
	var out ValidateAssignmentResponse
	err := c.do(ctx, http.MethodPost, "/conflicts/validate-assignment", nil, req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(payload)}
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls the backend's error text out of a failure body so it
// can be shown verbatim.
func errorMessage(payload []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		for _, candidate := range []string{envelope.Error, envelope.Message, envelope.Detail} {
			if strings.TrimSpace(candidate) != "" {
				return candidate
			}
		}
	}
	return strings.TrimSpace(string(payload))
}
