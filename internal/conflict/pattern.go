// internal/conflict/pattern.go

package conflict

import "time"

// AffectedPerson ranks one person inside a pattern by how often they appear.
type AffectedPerson struct {
	PersonID    string `json:"person_id"`
	Name        string `json:"name,omitempty"`
	Occurrences int    `json:"occurrences"`
}

// Pattern aggregates recurring conflicts of one type across the whole
// population. Patterns are recomputed server-side; the client only renders
// and filters them.
type Pattern struct {
	Type            Type             `json:"type"`
	Frequency       int              `json:"frequency"`
	FirstOccurrence time.Time        `json:"first_occurrence"`
	LastOccurrence  time.Time        `json:"last_occurrence"`
	AffectedPeople  []AffectedPerson `json:"affected_people,omitempty"`
	RootCause       string           `json:"root_cause,omitempty"`
	Prevention      string           `json:"prevention,omitempty"`
}

// Statistics summarizes the conflict population for the dashboard header.
type Statistics struct {
	Total         int              `json:"total"`
	BySeverity    map[Severity]int `json:"by_severity,omitempty"`
	ByStatus      map[Status]int   `json:"by_status,omitempty"`
	ByType        map[Type]int     `json:"by_type,omitempty"`
	Unresolved    int              `json:"unresolved"`
	ResolvedToday int              `json:"resolved_today,omitempty"`
}
