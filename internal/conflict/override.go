// internal/conflict/override.go

package conflict

import "time"

// OverrideType is how long a manual override holds.
type OverrideType string

const (
	OverrideAcknowledge OverrideType = "acknowledge"
	OverrideTemporary   OverrideType = "temporary"
	OverridePermanent   OverrideType = "permanent"
)

// OverrideTypes lists override durations in display order.
var OverrideTypes = []OverrideType{OverrideAcknowledge, OverrideTemporary, OverridePermanent}

// Valid reports whether the override type is known.
func (t OverrideType) Valid() bool {
	for _, known := range OverrideTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label renders the override type for display.
func (t OverrideType) Label() string {
	return friendlyLabel(string(t))
}

// AcgmeExceptionType is the fixed enumeration of grounds for overriding an
// ACGME-related conflict. The set is a business rule, not configurable.
type AcgmeExceptionType string

const (
	AcgmeEducationalNeed       AcgmeExceptionType = "educational_need"
	AcgmePatientCareContinuity AcgmeExceptionType = "patient_care_continuity"
	AcgmeEmergencyCoverage     AcgmeExceptionType = "emergency_coverage"
	AcgmeClinicalNecessity     AcgmeExceptionType = "clinical_necessity"
	AcgmeOther                 AcgmeExceptionType = "other"
)

// AcgmeExceptionTypes lists the allowed exception grounds in display order.
var AcgmeExceptionTypes = []AcgmeExceptionType{
	AcgmeEducationalNeed,
	AcgmePatientCareContinuity,
	AcgmeEmergencyCoverage,
	AcgmeClinicalNecessity,
	AcgmeOther,
}

// Valid reports whether the exception type is in the allowed enumeration.
func (t AcgmeExceptionType) Valid() bool {
	for _, known := range AcgmeExceptionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label renders the exception type for display.
func (t AcgmeExceptionType) Label() string {
	return friendlyLabel(string(t))
}

// ManualOverride is the write-only request body for POST /conflicts/:id/override.
// An audited human decision to accept a conflict's risk instead of changing
// the schedule.
type ManualOverride struct {
	OverrideType  OverrideType `json:"override_type"`
	Reason        string       `json:"reason"`
	Justification string       `json:"justification"`

	// ExpiresAt is required iff OverrideType is temporary.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	IsAcgmeRelated     bool               `json:"is_acgme_related"`
	AcgmeExceptionType AcgmeExceptionType `json:"acgme_exception_type,omitempty"`

	SupervisorApprovalRequired bool   `json:"supervisor_approval_required"`
	SupervisorApproved         bool   `json:"supervisor_approved"`
	SupervisorID               string `json:"supervisor_id,omitempty"`
}
