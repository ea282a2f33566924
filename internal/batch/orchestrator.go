// internal/batch/orchestrator.go
//
// Applies one resolution method to a batch of selected conflicts and
// reconciles the backend's per-item results against the input set. Partial
// failure is expected and non-fatal: failed conflicts stay unresolved and
// are reported, never dropped.

package batch

import (
	"context"
	"fmt"

	"github.com/medroster/conflictdeck/internal/api"
	"github.com/medroster/conflictdeck/internal/conflict"
)

// Resolver is the slice of the API client the orchestrator needs.
type Resolver interface {
	BatchResolve(ctx context.Context, req api.BatchResolveRequest) (api.BatchResponse, error)
	BatchIgnore(ctx context.Context, req api.BatchIgnoreRequest) (api.BatchResponse, error)
}

// Result is the reconciled outcome for one conflict in the batch.
type Result struct {
	ConflictID string
	Success    bool
	Message    string
	Resolution *conflict.Conflict
}

// Outcome is the full batch result. The aggregate counts always satisfy
// Successful + Failed == Total == number of input conflicts.
type Outcome struct {
	Results    []Result
	Total      int
	Successful int
	Failed     int
}

// Request describes one batch operation.
type Request struct {
	ConflictIDs       []string
	Method            conflict.ResolutionMethod
	ApplySuggestionID string
	Notes             string
}

// Resolve runs a batch resolution. The transport failing as a whole is an
// error; individual conflicts failing is a normal outcome.
func Resolve(ctx context.Context, resolver Resolver, req Request) (Outcome, error) {
	ids, err := validateIDs(req.ConflictIDs)
	if err != nil {
		return Outcome{}, err
	}
	if !req.Method.Valid() {
		return Outcome{}, fmt.Errorf("batch: unknown resolution method %q", req.Method)
	}
	resp, err := resolver.BatchResolve(ctx, api.BatchResolveRequest{
		ConflictIDs:       ids,
		ResolutionMethod:  req.Method,
		ApplySuggestionID: req.ApplySuggestionID,
		Notes:             req.Notes,
	})
	if err != nil {
		return Outcome{}, err
	}
	return reconcile(ids, resp), nil
}

// Ignore marks the batch ignored with the same reconciliation rules.
func Ignore(ctx context.Context, resolver Resolver, ids []string, notes string) (Outcome, error) {
	cleaned, err := validateIDs(ids)
	if err != nil {
		return Outcome{}, err
	}
	resp, err := resolver.BatchIgnore(ctx, api.BatchIgnoreRequest{ConflictIDs: cleaned, Notes: notes})
	if err != nil {
		return Outcome{}, err
	}
	return reconcile(cleaned, resp), nil
}

func validateIDs(ids []string) ([]string, error) {
	seen := map[string]struct{}{}
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("batch: at least one conflict must be selected")
	}
	return cleaned, nil
}

// reconcile maps the backend's results onto the input set: every input id
// gets exactly one result, results for ids outside the input are dropped,
// and ids the backend never reported on count as failures.
func reconcile(ids []string, resp api.BatchResponse) Outcome {
	byID := make(map[string]api.BatchItemResult, len(resp.Results))
	inInput := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		inInput[id] = struct{}{}
	}
	for _, item := range resp.Results {
		if _, ok := inInput[item.ConflictID]; !ok {
			continue
		}
		byID[item.ConflictID] = item
	}
	outcome := Outcome{Total: len(ids), Results: make([]Result, 0, len(ids))}
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			outcome.Failed++
			outcome.Results = append(outcome.Results, Result{
				ConflictID: id,
				Success:    false,
				Message:    "no result returned for this conflict",
			})
			continue
		}
		result := Result{
			ConflictID: id,
			Success:    item.Success,
			Message:    item.Message,
			Resolution: item.Resolution,
		}
		if result.Success {
			outcome.Successful++
		} else {
			outcome.Failed++
		}
		outcome.Results = append(outcome.Results, result)
	}
	return outcome
}
