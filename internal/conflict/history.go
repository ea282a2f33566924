// internal/conflict/history.go

package conflict

import "time"

// HistoryAction classifies one audit record on a conflict.
type HistoryAction string

const (
	ActionDetected   HistoryAction = "detected"
	ActionUpdated    HistoryAction = "updated"
	ActionResolved   HistoryAction = "resolved"
	ActionReopened   HistoryAction = "reopened"
	ActionIgnored    HistoryAction = "ignored"
	ActionOverridden HistoryAction = "overridden"
)

// FieldChange records one field's before/after values inside a history entry.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// HistoryEntry is one append-only audit record on a conflict. Entries are
// strictly ordered by timestamp and never mutated once created.
type HistoryEntry struct {
	ID         string                 `json:"id"`
	ConflictID string                 `json:"conflict_id"`
	Action     HistoryAction          `json:"action"`
	Timestamp  time.Time              `json:"timestamp"`
	Actor      string                 `json:"actor,omitempty"`
	Changes    map[string]FieldChange `json:"changes,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
}
