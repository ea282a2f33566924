// internal/history/analyzer.go
//
// Renders a single conflict's audit timeline and aggregates recurring
// patterns across the whole conflict population. Patterns arrive
// server-computed; this side only filters and summarizes them.

package history

import (
	"fmt"
	"sort"

	"github.com/medroster/conflictdeck/internal/conflict"
)

// actionLabels is the fixed mapping from audit action to the label shown on
// the timeline.
var actionLabels = map[conflict.HistoryAction]string{
	conflict.ActionDetected:   "Conflict detected",
	conflict.ActionUpdated:    "Conflict updated",
	conflict.ActionResolved:   "Conflict resolved",
	conflict.ActionReopened:   "Conflict reopened",
	conflict.ActionIgnored:    "Conflict ignored",
	conflict.ActionOverridden: "Manual override applied",
}

// ActionLabel returns the display label for an audit action. Unknown
// actions fall back to the raw value so nothing is hidden.
func ActionLabel(action conflict.HistoryAction) string {
	if label, ok := actionLabels[action]; ok {
		return label
	}
	return string(action)
}

// ChangeLine is one field-level before/after pair rendered under a timeline
// entry.
type ChangeLine struct {
	Field string
	From  string
	To    string
}

// String renders the pair the way the timeline shows it.
func (c ChangeLine) String() string {
	return fmt.Sprintf("%s: %s → %s", c.Field, c.From, c.To)
}

// TimelineEntry is one audit record prepared for display.
type TimelineEntry struct {
	Entry   conflict.HistoryEntry
	Label   string
	Changes []ChangeLine
}

// Timeline orders entries oldest-to-newest and annotates each with its
// label and rendered change pairs. Entries are append-only, so timestamp
// order is also construction order.
func Timeline(entries []conflict.HistoryEntry) []TimelineEntry {
	ordered := append([]conflict.HistoryEntry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	out := make([]TimelineEntry, 0, len(ordered))
	for _, entry := range ordered {
		out = append(out, TimelineEntry{
			Entry:   entry,
			Label:   ActionLabel(entry.Action),
			Changes: changeLines(entry.Changes),
		})
	}
	return out
}

func changeLines(changes map[string]conflict.FieldChange) []ChangeLine {
	if len(changes) == 0 {
		return nil
	}
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	out := make([]ChangeLine, 0, len(fields))
	for _, field := range fields {
		out = append(out, ChangeLine{Field: field, From: changes[field].From, To: changes[field].To})
	}
	return out
}

// Trend flags whether a pattern is growing.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
)

// trendThreshold is the frequency above which a pattern displays as
// increasing. TODO: replace with a server-computed period-over-period
// baseline; a flat threshold cannot distinguish a chronic pattern from a
// growing one.
const trendThreshold = 5

// PatternTrend applies the fixed display threshold.
func PatternTrend(p conflict.Pattern) Trend {
	if p.Frequency > trendThreshold {
		return TrendIncreasing
	}
	return TrendStable
}

// Analyzer holds the fetched pattern set and a client-side type filter, so
// narrowing by type never needs a new fetch.
type Analyzer struct {
	patterns   []conflict.Pattern
	typeFilter conflict.Type
}

// NewAnalyzer wraps a fetched pattern set.
func NewAnalyzer(patterns []conflict.Pattern) *Analyzer {
	return &Analyzer{patterns: append([]conflict.Pattern(nil), patterns...)}
}

// SetTypeFilter narrows the visible patterns to one conflict type; the
// empty type clears the filter.
func (a *Analyzer) SetTypeFilter(t conflict.Type) {
	a.typeFilter = t
}

// TypeFilter returns the active type filter, empty when unset.
func (a *Analyzer) TypeFilter() conflict.Type {
	return a.typeFilter
}

// Patterns returns the visible patterns after the type filter.
func (a *Analyzer) Patterns() []conflict.Pattern {
	if a.typeFilter == "" {
		return append([]conflict.Pattern(nil), a.patterns...)
	}
	out := make([]conflict.Pattern, 0, len(a.patterns))
	for _, p := range a.patterns {
		if p.Type == a.typeFilter {
			out = append(out, p)
		}
	}
	return out
}

// MostFrequentType returns the pattern type with the highest frequency
// across the unfiltered set, and false when there are no patterns.
func (a *Analyzer) MostFrequentType() (conflict.Type, bool) {
	best := -1
	var bestType conflict.Type
	for _, p := range a.patterns {
		if p.Frequency > best {
			best = p.Frequency
			bestType = p.Type
		}
	}
	if best < 0 {
		return "", false
	}
	return bestType, true
}

// TotalPeopleAffected sums per-pattern affected-people counts across the
// unfiltered set. A person appearing under multiple pattern types is
// counted once per type; the total is a display-only approximation, not a
// unique-person count.
func (a *Analyzer) TotalPeopleAffected() int {
	total := 0
	for _, p := range a.patterns {
		total += len(p.AffectedPeople)
	}
	return total
}

// TotalConflicts sums pattern frequencies across the unfiltered set.
func (a *Analyzer) TotalConflicts() int {
	total := 0
	for _, p := range a.patterns {
		total += p.Frequency
	}
	return total
}
