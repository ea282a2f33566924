package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/medroster/conflictdeck/internal/api"
	"github.com/medroster/conflictdeck/internal/conflict"
)

type fakeResolver struct {
	resolveResp api.BatchResponse
	ignoreResp  api.BatchResponse
	err         error
	lastResolve api.BatchResolveRequest
	lastIgnore  api.BatchIgnoreRequest
}

func (f *fakeResolver) BatchResolve(_ context.Context, req api.BatchResolveRequest) (api.BatchResponse, error) {
	f.lastResolve = req
	return f.resolveResp, f.err
}

func (f *fakeResolver) BatchIgnore(_ context.Context, req api.BatchIgnoreRequest) (api.BatchResponse, error) {
	f.lastIgnore = req
	return f.ignoreResp, f.err
}

func TestResolveAggregatesPartialFailure(t *testing.T) {
	resolver := &fakeResolver{resolveResp: api.BatchResponse{Results: []api.BatchItemResult{
		{ConflictID: "a", Success: true, Message: "swapped"},
		{ConflictID: "b", Success: false, Message: "no eligible swap partner"},
	}}}
	outcome, err := Resolve(context.Background(), resolver, Request{
		ConflictIDs: []string{"a", "b"},
		Method:      conflict.MethodSwap,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Total != 2 || outcome.Successful != 1 || outcome.Failed != 1 {
		t.Fatalf("aggregate = %+v, want total 2 / 1 / 1", outcome)
	}
	if outcome.Successful+outcome.Failed != outcome.Total {
		t.Fatalf("successful + failed must equal total: %+v", outcome)
	}
	if resolver.lastResolve.ResolutionMethod != conflict.MethodSwap {
		t.Fatalf("method not forwarded: %+v", resolver.lastResolve)
	}
}

func TestResolveFillsMissingResultsAsFailures(t *testing.T) {
	resolver := &fakeResolver{resolveResp: api.BatchResponse{Results: []api.BatchItemResult{
		{ConflictID: "a", Success: true},
	}}}
	outcome, err := Resolve(context.Background(), resolver, Request{
		ConflictIDs: []string{"a", "b", "c"},
		Method:      conflict.MethodManualReassign,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Total != 3 || outcome.Successful != 1 || outcome.Failed != 2 {
		t.Fatalf("aggregate = %+v, want 3 / 1 / 2", outcome)
	}
	for _, r := range outcome.Results {
		if r.ConflictID == "b" && (r.Success || r.Message == "") {
			t.Fatalf("unreported conflict must fail with a message: %+v", r)
		}
	}
}

func TestResolveDropsForeignResults(t *testing.T) {
	resolver := &fakeResolver{resolveResp: api.BatchResponse{Results: []api.BatchItemResult{
		{ConflictID: "a", Success: true},
		{ConflictID: "intruder", Success: true},
	}}}
	outcome, err := Resolve(context.Background(), resolver, Request{
		ConflictIDs: []string{"a"},
		Method:      conflict.MethodCancelAssignment,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Total != 1 || len(outcome.Results) != 1 {
		t.Fatalf("results must only reference input ids: %+v", outcome.Results)
	}
	if outcome.Results[0].ConflictID != "a" {
		t.Fatalf("unexpected result id %s", outcome.Results[0].ConflictID)
	}
}

func TestResolveRejectsEmptySelection(t *testing.T) {
	if _, err := Resolve(context.Background(), &fakeResolver{}, Request{Method: conflict.MethodSwap}); err == nil {
		t.Fatalf("empty selection must be rejected")
	}
	if _, err := Resolve(context.Background(), &fakeResolver{}, Request{
		ConflictIDs: []string{"a"},
		Method:      conflict.ResolutionMethod("teleport"),
	}); err == nil {
		t.Fatalf("unknown method must be rejected")
	}
}

func TestResolveDeduplicatesInput(t *testing.T) {
	resolver := &fakeResolver{resolveResp: api.BatchResponse{Results: []api.BatchItemResult{
		{ConflictID: "a", Success: true},
	}}}
	outcome, err := Resolve(context.Background(), resolver, Request{
		ConflictIDs: []string{"a", "a", ""},
		Method:      conflict.MethodSwap,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Total != 1 {
		t.Fatalf("duplicates and blanks must collapse, total=%d", outcome.Total)
	}
}

func TestTransportErrorIsFatal(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("backend unreachable")}
	if _, err := Resolve(context.Background(), resolver, Request{
		ConflictIDs: []string{"a"},
		Method:      conflict.MethodSwap,
	}); err == nil {
		t.Fatalf("transport failure must surface as an error")
	}
}

func TestIgnoreUsesSameReconciliation(t *testing.T) {
	resolver := &fakeResolver{ignoreResp: api.BatchResponse{Results: []api.BatchItemResult{
		{ConflictID: "a", Success: true},
		{ConflictID: "b", Success: false, Message: "already resolved"},
	}}}
	outcome, err := Ignore(context.Background(), resolver, []string{"a", "b"}, "bulk cleanup")
	if err != nil {
		t.Fatalf("ignore: %v", err)
	}
	if outcome.Total != 2 || outcome.Successful != 1 || outcome.Failed != 1 {
		t.Fatalf("aggregate = %+v", outcome)
	}
	if resolver.lastIgnore.Notes != "bulk cleanup" {
		t.Fatalf("notes not forwarded: %+v", resolver.lastIgnore)
	}
}
