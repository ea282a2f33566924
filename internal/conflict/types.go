// internal/conflict/types.go
//
// Core data model for the conflict console. Conflicts are created by the
// scheduling backend's detector and mutated only through the resolve,
// override, and status-update operations; the client never deletes them.

package conflict

import (
	"strings"
	"time"
)

// Type identifies the kind of scheduling problem a conflict represents.
type Type string

const (
	TypeSchedulingOverlap     Type = "scheduling_overlap"
	TypeACGMEViolation        Type = "acgme_violation"
	TypeSupervisionMissing    Type = "supervision_missing"
	TypeCapacityExceeded      Type = "capacity_exceeded"
	TypeAbsenceConflict       Type = "absence_conflict"
	TypeQualificationMismatch Type = "qualification_mismatch"
	TypeConsecutiveDuty       Type = "consecutive_duty"
	TypeRestPeriod            Type = "rest_period"
	TypeCoverageGap           Type = "coverage_gap"
)

// Types lists every known conflict type in display order.
var Types = []Type{
	TypeSchedulingOverlap,
	TypeACGMEViolation,
	TypeSupervisionMissing,
	TypeCapacityExceeded,
	TypeAbsenceConflict,
	TypeQualificationMismatch,
	TypeConsecutiveDuty,
	TypeRestPeriod,
	TypeCoverageGap,
}

// Valid reports whether the type is one of the known kinds.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Label renders the type for display ("scheduling_overlap" -> "Scheduling Overlap").
func (t Type) Label() string {
	return friendlyLabel(string(t))
}

// Severity grades how urgently a conflict needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists severities from most to least urgent.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns a sortable weight; lower is more urgent.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return len(Severities)
}

// Valid reports whether the severity is a known grade.
func (s Severity) Valid() bool {
	return s.Rank() < len(Severities)
}

// Label renders the severity for display.
func (s Severity) Label() string {
	return friendlyLabel(string(s))
}

// Status tracks where a conflict sits in its lifecycle.
type Status string

const (
	StatusUnresolved    Status = "unresolved"
	StatusPendingReview Status = "pending_review"
	StatusResolved      Status = "resolved"
	StatusIgnored       Status = "ignored"
)

// Statuses lists every lifecycle status in display order.
var Statuses = []Status{StatusUnresolved, StatusPendingReview, StatusResolved, StatusIgnored}

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label renders the status for display.
func (s Status) Label() string {
	return friendlyLabel(string(s))
}

// Session narrows a conflict to half a day when set.
type Session string

const (
	SessionAM Session = "AM"
	SessionPM Session = "PM"
)

// Conflict is one detected scheduling problem awaiting review.
type Conflict struct {
	ID          string   `json:"id"`
	Type        Type     `json:"type"`
	Severity    Severity `json:"severity"`
	Status      Status   `json:"status"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`

	PersonIDs     []string `json:"person_ids,omitempty"`
	AssignmentIDs []string `json:"assignment_ids,omitempty"`
	BlockIDs      []string `json:"block_ids,omitempty"`

	ConflictDate time.Time `json:"conflict_date"`
	Session      Session   `json:"session,omitempty"`

	DetectedAt time.Time `json:"detected_at"`
	DetectedBy string    `json:"detected_by,omitempty"`

	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy       string     `json:"resolved_by,omitempty"`
	ResolutionMethod string     `json:"resolution_method,omitempty"`
	ResolutionNotes  string     `json:"resolution_notes,omitempty"`

	Details Details `json:"details,omitempty"`
}

// ResolutionConsistent reports whether the resolved_* metadata matches the
// lifecycle status: populated iff the conflict is resolved.
func (c Conflict) ResolutionConsistent() bool {
	resolved := c.ResolvedAt != nil && !c.ResolvedAt.IsZero()
	return resolved == (c.Status == StatusResolved)
}

func friendlyLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	replacer := strings.NewReplacer("_", " ", "-", " ")
	words := strings.Fields(replacer.Replace(strings.ToLower(value)))
	for i, word := range words {
		if word == "acgme" {
			words[i] = "ACGME"
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
