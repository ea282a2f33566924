package history

import (
	"testing"
	"time"

	"github.com/medroster/conflictdeck/internal/conflict"
)

func TestTimelineOrdersOldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := []conflict.HistoryEntry{
		{ID: "h3", Action: conflict.ActionResolved, Timestamp: base.Add(2 * time.Hour)},
		{ID: "h1", Action: conflict.ActionDetected, Timestamp: base},
		{ID: "h2", Action: conflict.ActionUpdated, Timestamp: base.Add(time.Hour)},
	}
	timeline := Timeline(entries)
	if len(timeline) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(timeline))
	}
	for i, want := range []string{"h1", "h2", "h3"} {
		if timeline[i].Entry.ID != want {
			t.Fatalf("entry %d = %s, want %s", i, timeline[i].Entry.ID, want)
		}
	}
	if timeline[0].Label != "Conflict detected" || timeline[2].Label != "Conflict resolved" {
		t.Fatalf("unexpected labels: %q, %q", timeline[0].Label, timeline[2].Label)
	}
}

func TestTimelineRendersChangePairs(t *testing.T) {
	entries := []conflict.HistoryEntry{{
		ID:        "h1",
		Action:    conflict.ActionUpdated,
		Timestamp: time.Now(),
		Changes: map[string]conflict.FieldChange{
			"status":   {From: "unresolved", To: "pending_review"},
			"severity": {From: "high", To: "critical"},
		},
	}}
	timeline := Timeline(entries)
	changes := timeline[0].Changes
	if len(changes) != 2 {
		t.Fatalf("expected 2 change lines, got %d", len(changes))
	}
	// Fields render in stable alphabetical order.
	if changes[0].Field != "severity" || changes[1].Field != "status" {
		t.Fatalf("unexpected field order: %s, %s", changes[0].Field, changes[1].Field)
	}
	if got := changes[1].String(); got != "status: unresolved → pending_review" {
		t.Fatalf("unexpected change rendering: %q", got)
	}
}

func TestActionLabelCoversEveryAction(t *testing.T) {
	actions := []conflict.HistoryAction{
		conflict.ActionDetected, conflict.ActionUpdated, conflict.ActionResolved,
		conflict.ActionReopened, conflict.ActionIgnored, conflict.ActionOverridden,
	}
	seen := map[string]bool{}
	for _, action := range actions {
		label := ActionLabel(action)
		if label == string(action) {
			t.Fatalf("action %s is missing a display label", action)
		}
		if seen[label] {
			t.Fatalf("duplicate label %q", label)
		}
		seen[label] = true
	}
	if got := ActionLabel(conflict.HistoryAction("escalated")); got != "escalated" {
		t.Fatalf("unknown actions must fall back to the raw value, got %q", got)
	}
}

func patterns() []conflict.Pattern {
	return []conflict.Pattern{
		{
			Type:      conflict.TypeRestPeriod,
			Frequency: 9,
			AffectedPeople: []conflict.AffectedPerson{
				{PersonID: "p1", Occurrences: 5},
				{PersonID: "p2", Occurrences: 4},
			},
		},
		{
			Type:      conflict.TypeCoverageGap,
			Frequency: 3,
			AffectedPeople: []conflict.AffectedPerson{
				{PersonID: "p1", Occurrences: 2},
				{PersonID: "p3", Occurrences: 1},
				{PersonID: "p4", Occurrences: 1},
			},
		},
	}
}

func TestAnalyzerTypeFilterIsClientSide(t *testing.T) {
	a := NewAnalyzer(patterns())
	if got := len(a.Patterns()); got != 2 {
		t.Fatalf("unfiltered patterns = %d, want 2", got)
	}
	a.SetTypeFilter(conflict.TypeCoverageGap)
	visible := a.Patterns()
	if len(visible) != 1 || visible[0].Type != conflict.TypeCoverageGap {
		t.Fatalf("filter by type broken: %+v", visible)
	}
	a.SetTypeFilter("")
	if got := len(a.Patterns()); got != 2 {
		t.Fatalf("clearing the filter must restore everything, got %d", got)
	}
}

func TestAnalyzerSummaries(t *testing.T) {
	a := NewAnalyzer(patterns())
	top, ok := a.MostFrequentType()
	if !ok || top != conflict.TypeRestPeriod {
		t.Fatalf("most frequent = %s %v, want rest_period", top, ok)
	}
	// p1 appears under both patterns and is counted twice: the total is a
	// documented display approximation.
	if got := a.TotalPeopleAffected(); got != 5 {
		t.Fatalf("people affected = %d, want 5", got)
	}
	if got := a.TotalConflicts(); got != 12 {
		t.Fatalf("total conflicts = %d, want 12", got)
	}
	empty := NewAnalyzer(nil)
	if _, ok := empty.MostFrequentType(); ok {
		t.Fatalf("empty analyzer must report no most-frequent type")
	}
}

func TestPatternTrendThreshold(t *testing.T) {
	if got := PatternTrend(conflict.Pattern{Frequency: 5}); got != TrendStable {
		t.Fatalf("frequency 5 must be stable, got %s", got)
	}
	if got := PatternTrend(conflict.Pattern{Frequency: 6}); got != TrendIncreasing {
		t.Fatalf("frequency 6 must be increasing, got %s", got)
	}
}
