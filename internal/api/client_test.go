package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/medroster/conflictdeck/internal/conflict"
)

func TestListConflictsSendsCanonicalQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/conflicts" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(Page{
			Items: []conflict.Conflict{{ID: "c1", Type: conflict.TypeCoverageGap, Severity: conflict.SeverityHigh, Status: conflict.StatusUnresolved}},
			Total: 1, Page: 1, PageSize: 25, Pages: 1,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithToken("secret"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	query := url.Values{}
	query.Set("severities", "critical,high")
	query.Set("sort_by", "severity")
	page, err := client.ListConflicts(context.Background(), query)
	if err != nil {
		t.Fatalf("list conflicts: %v", err)
	}
	if gotQuery.Get("severities") != "critical,high" {
		t.Fatalf("query not forwarded: %v", gotQuery)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "c1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("missing bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(conflict.Conflict{ID: "c1"})
	}))
	defer server.Close()
	client, err := NewClient(server.URL, WithToken("secret"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GetConflict(context.Background(), "c1"); err != nil {
		t.Fatalf("get conflict: %v", err)
	}
}

func TestBackendErrorSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict already resolved by another operator"}`))
	}))
	defer server.Close()
	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Resolve(context.Background(), "c1", ResolveRequest{SuggestionID: "s1"})
	if err == nil {
		t.Fatalf("expected backend error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Error() != "conflict already resolved by another operator" {
		t.Fatalf("message must be verbatim, got %q", apiErr.Error())
	}
}

func TestOverrideSendsFullBody(t *testing.T) {
	var got conflict.ManualOverride
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/conflicts/c9/override" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(conflict.Conflict{ID: "c9", Status: conflict.StatusPendingReview})
	}))
	defer server.Close()
	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	updated, err := client.Override(context.Background(), "c9", conflict.ManualOverride{
		OverrideType:       conflict.OverridePermanent,
		Reason:             "coverage emergency",
		Justification:      "approved by program director",
		IsAcgmeRelated:     true,
		AcgmeExceptionType: conflict.AcgmeEmergencyCoverage,
	})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if got.AcgmeExceptionType != conflict.AcgmeEmergencyCoverage || got.Reason != "coverage emergency" {
		t.Fatalf("body not forwarded: %+v", got)
	}
	if updated.Status != conflict.StatusPendingReview {
		t.Fatalf("server state not returned: %+v", updated)
	}
}

func TestBatchResolveDecodesPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conflicts/batch-resolve" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(BatchResponse{Results: []BatchItemResult{
			{ConflictID: "a", Success: true, Message: "resolved"},
			{ConflictID: "b", Success: false, Message: "no eligible swap partner"},
		}})
	}))
	defer server.Close()
	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.BatchResolve(context.Background(), BatchResolveRequest{
		ConflictIDs:      []string{"a", "b"},
		ResolutionMethod: conflict.MethodSwap,
	})
	if err != nil {
		t.Fatalf("partial failure must not be an error: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[1].Success {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestNewClientRejectsEmptyBaseURL(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestInvalidationTable(t *testing.T) {
	mutations := []Mutation{
		MutationResolve, MutationResolveManual, MutationStatusUpdate,
		MutationOverride, MutationBatchResolve, MutationBatchIgnore, MutationDetect,
	}
	for _, m := range mutations {
		if !Invalidates(m, KeyConflictList) {
			t.Fatalf("every mutation must invalidate the conflict list, %s does not", m)
		}
	}
	if !Invalidates(MutationResolve, KeySchedule) || !Invalidates(MutationResolve, KeyAssignments) {
		t.Fatalf("resolve must invalidate sibling schedule caches")
	}
	if !Invalidates(MutationDetect, KeyPatterns) {
		t.Fatalf("detection must invalidate patterns")
	}
	if Invalidates(MutationStatusUpdate, KeySchedule) {
		t.Fatalf("status updates do not move assignments and must not invalidate the schedule")
	}
	if keys := InvalidatedKeys(Mutation("unknown")); keys != nil {
		t.Fatalf("unknown mutation must invalidate nothing, got %v", keys)
	}
}
