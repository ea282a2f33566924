// internal/conflict/suggestion.go

package conflict

import "fmt"

// ResolutionMethod names how a conflict was (or would be) resolved.
type ResolutionMethod string

const (
	MethodAutoResolved     ResolutionMethod = "auto_resolved"
	MethodManualReassign   ResolutionMethod = "manual_reassign"
	MethodManualOverride   ResolutionMethod = "manual_override"
	MethodSwap             ResolutionMethod = "swap"
	MethodCancelAssignment ResolutionMethod = "cancel_assignment"
	MethodAddCoverage      ResolutionMethod = "add_coverage"
	MethodIgnored          ResolutionMethod = "ignored"
)

// ResolutionMethods lists every resolution method in display order.
var ResolutionMethods = []ResolutionMethod{
	MethodAutoResolved,
	MethodManualReassign,
	MethodManualOverride,
	MethodSwap,
	MethodCancelAssignment,
	MethodAddCoverage,
	MethodIgnored,
}

// Valid reports whether the method is a known resolution method.
func (m ResolutionMethod) Valid() bool {
	for _, known := range ResolutionMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Label renders the method for display.
func (m ResolutionMethod) Label() string {
	return friendlyLabel(string(m))
}

// ChangeKind classifies one step inside a resolution.
type ChangeKind string

const (
	ChangeReassign ChangeKind = "reassign"
	ChangeRemove   ChangeKind = "remove"
	ChangeAdd      ChangeKind = "add"
	ChangeSwap     ChangeKind = "swap"
	ChangeModify   ChangeKind = "modify"
)

// ResolutionChange is one typed diff inside a suggestion or manual
// resolution: who or what moves, from where, to where.
type ResolutionChange struct {
	Kind         ChangeKind `json:"kind"`
	AssignmentID string     `json:"assignment_id,omitempty"`
	BlockID      string     `json:"block_id,omitempty"`
	PersonBefore string     `json:"person_before,omitempty"`
	PersonAfter  string     `json:"person_after,omitempty"`
	Field        string     `json:"field,omitempty"`
	ValueBefore  string     `json:"value_before,omitempty"`
	ValueAfter   string     `json:"value_after,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// Summary renders the change as a one-line description, preferring the
// backend's own text when present.
func (c ResolutionChange) Summary() string {
	if c.Description != "" {
		return c.Description
	}
	switch c.Kind {
	case ChangeReassign:
		return fmt.Sprintf("reassign %s → %s", c.PersonBefore, c.PersonAfter)
	case ChangeRemove:
		return fmt.Sprintf("remove %s", c.PersonBefore)
	case ChangeAdd:
		return fmt.Sprintf("add %s", c.PersonAfter)
	case ChangeSwap:
		return fmt.Sprintf("swap %s ↔ %s", c.PersonBefore, c.PersonAfter)
	case ChangeModify:
		return fmt.Sprintf("%s: %s → %s", c.Field, c.ValueBefore, c.ValueAfter)
	}
	return string(c.Kind)
}

// ResolutionSuggestion is a machine-generated way to resolve one conflict.
// Suggestions are read-only projections fetched per conflict; applying one
// transitions the conflict to resolved.
type ResolutionSuggestion struct {
	ID         string           `json:"id"`
	ConflictID string           `json:"conflict_id"`
	Method     ResolutionMethod `json:"method"`

	// ImpactScore is 0-100, lower is better. Confidence is 0-100,
	// higher is better.
	ImpactScore int `json:"impact_score"`
	Confidence  int `json:"confidence"`

	Changes     []ResolutionChange `json:"changes,omitempty"`
	SideEffects string             `json:"side_effects,omitempty"`
	Recommended bool               `json:"recommended"`
}
