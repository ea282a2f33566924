// internal/override/builder.go
//
// Assembles and validates a manual override before submission. The submit
// affordance stays disabled until the builder is valid, so the backend
// never sees a half-filled override.

package override

import (
	"fmt"
	"strings"
	"time"

	"github.com/medroster/conflictdeck/internal/conflict"
)

// acgmeTypes are the conflict types that default an override to
// ACGME-related. The flag stays editable before submit.
var acgmeTypes = map[conflict.Type]bool{
	conflict.TypeACGMEViolation:  true,
	conflict.TypeConsecutiveDuty: true,
	conflict.TypeRestPeriod:      true,
}

// Builder collects the fields of a manual override for one conflict.
type Builder struct {
	ConflictID string

	OverrideType  conflict.OverrideType
	Reason        string
	Justification string
	ExpiresAt     *time.Time

	IsAcgmeRelated     bool
	AcgmeExceptionType conflict.AcgmeExceptionType

	SupervisorApprovalRequired bool
	SupervisorApproved         bool
	SupervisorID               string

	// RiskAcknowledged must be checked regardless of every other field.
	RiskAcknowledged bool

	now func() time.Time
}

// NewBuilder seeds a builder from the target conflict: ACGME relation
// defaults from the conflict type and supervisor approval is auto-required
// for critical conflicts. Both defaults remain user-editable.
func NewBuilder(c conflict.Conflict) *Builder {
	return &Builder{
		ConflictID:                 c.ID,
		OverrideType:               conflict.OverrideAcknowledge,
		IsAcgmeRelated:             acgmeTypes[c.Type],
		SupervisorApprovalRequired: c.Severity == conflict.SeverityCritical,
		now:                        time.Now,
	}
}

// WithClock lets tests pin the current date used by expiry validation.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Problems returns every unmet submission requirement, in validation order.
// An empty slice means the override is ready to submit.
func (b *Builder) Problems() []string {
	var problems []string
	if strings.TrimSpace(b.Reason) == "" {
		problems = append(problems, "reason is required")
	}
	if strings.TrimSpace(b.Justification) == "" {
		problems = append(problems, "justification is required")
	}
	if b.OverrideType == conflict.OverrideTemporary {
		if b.ExpiresAt == nil || b.ExpiresAt.IsZero() {
			problems = append(problems, "temporary overrides require an expiration date")
		} else if dateOnly(*b.ExpiresAt).Before(dateOnly(b.currentTime())) {
			problems = append(problems, "expiration date cannot be in the past")
		}
	}
	if b.IsAcgmeRelated {
		if b.AcgmeExceptionType == "" {
			problems = append(problems, "ACGME-related overrides require an exception type")
		} else if !b.AcgmeExceptionType.Valid() {
			problems = append(problems, fmt.Sprintf("unknown ACGME exception type %q", b.AcgmeExceptionType))
		}
	}
	if b.SupervisorApprovalRequired && !b.SupervisorApproved {
		problems = append(problems, "supervisor approval is required before submitting")
	}
	if !b.RiskAcknowledged {
		problems = append(problems, "risk acknowledgement is required")
	}
	return problems
}

// IsValid reports whether every conditionally-required field is present.
func (b *Builder) IsValid() bool {
	return len(b.Problems()) == 0
}

// Build produces the request body for POST /conflicts/:id/override. It
// fails when the builder is not valid so an incomplete override can never
// be submitted programmatically either.
func (b *Builder) Build() (conflict.ManualOverride, error) {
	if problems := b.Problems(); len(problems) > 0 {
		return conflict.ManualOverride{}, fmt.Errorf("override: %s", problems[0])
	}
	ovr := conflict.ManualOverride{
		OverrideType:               b.OverrideType,
		Reason:                     b.Reason,
		Justification:              b.Justification,
		IsAcgmeRelated:             b.IsAcgmeRelated,
		SupervisorApprovalRequired: b.SupervisorApprovalRequired,
		SupervisorApproved:         b.SupervisorApproved,
		SupervisorID:               b.SupervisorID,
	}
	if b.OverrideType == conflict.OverrideTemporary && b.ExpiresAt != nil {
		expires := *b.ExpiresAt
		ovr.ExpiresAt = &expires
	}
	if b.IsAcgmeRelated {
		ovr.AcgmeExceptionType = b.AcgmeExceptionType
	}
	return ovr, nil
}

func (b *Builder) currentTime() time.Time {
	if b.now == nil {
		return time.Now()
	}
	return b.now()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
