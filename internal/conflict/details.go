// internal/conflict/details.go
//
// Each conflict carries a type-specific details payload. The backend sends
// it as a bare JSON object; the client decodes it into a tagged variant
// keyed on the conflict type so views can match exhaustively instead of
// digging through an open map. Unknown types fall back to GenericDetails.

package conflict

import (
	"encoding/json"
	"fmt"
)

// Details is the tagged variant behind Conflict.Details. Exactly one
// concrete shape applies per conflict type.
type Details interface {
	isDetails()
}

// OverlapDetails describes two or more assignments booked into the same slot.
type OverlapDetails struct {
	OverlappingAssignmentIDs []string `json:"overlapping_assignment_ids"`
	OverlapStart             string   `json:"overlap_start,omitempty"`
	OverlapEnd               string   `json:"overlap_end,omitempty"`
	Location                 string   `json:"location,omitempty"`
}

// DutyHourDetails backs the ACGME duty-hour family: acgme_violation,
// consecutive_duty, and rest_period conflicts all report against a rule
// limit with the measured value.
type DutyHourDetails struct {
	RuleCode    string  `json:"rule_code"`
	LimitHours  float64 `json:"limit_hours"`
	ActualHours float64 `json:"actual_hours"`
	WindowStart string  `json:"window_start,omitempty"`
	WindowEnd   string  `json:"window_end,omitempty"`
}

// SupervisionDetails describes a block scheduled without required oversight.
type SupervisionDetails struct {
	RequiredLevel        string   `json:"required_level"`
	AvailableSupervisors []string `json:"available_supervisors,omitempty"`
	BlockID              string   `json:"block_id,omitempty"`
}

// CapacityDetails describes a rotation staffed past its headcount.
type CapacityDetails struct {
	RotationID string `json:"rotation_id,omitempty"`
	Capacity   int    `json:"capacity"`
	Assigned   int    `json:"assigned"`
}

// AbsenceDetails describes an assignment colliding with approved leave.
type AbsenceDetails struct {
	AbsenceID    string `json:"absence_id"`
	AbsenceType  string `json:"absence_type,omitempty"`
	AbsenceStart string `json:"absence_start,omitempty"`
	AbsenceEnd   string `json:"absence_end,omitempty"`
}

// QualificationDetails describes a person assigned to work they are not
// credentialed for.
type QualificationDetails struct {
	RequiredQualification string   `json:"required_qualification"`
	PersonQualifications  []string `json:"person_qualifications,omitempty"`
	ProcedureCode         string   `json:"procedure_code,omitempty"`
}

// CoverageDetails describes a slot left below minimum staffing.
type CoverageDetails struct {
	RoleNeeded     string `json:"role_needed"`
	MinimumStaff   int    `json:"minimum_staff"`
	ScheduledStaff int    `json:"scheduled_staff"`
	UncoveredStart string `json:"uncovered_start,omitempty"`
	UncoveredEnd   string `json:"uncovered_end,omitempty"`
}

// GenericDetails preserves payloads for conflict types this build does not
// know a shape for.
type GenericDetails map[string]any

func (OverlapDetails) isDetails()       {}
func (DutyHourDetails) isDetails()      {}
func (SupervisionDetails) isDetails()   {}
func (CapacityDetails) isDetails()      {}
func (AbsenceDetails) isDetails()       {}
func (QualificationDetails) isDetails() {}
func (CoverageDetails) isDetails()      {}
func (GenericDetails) isDetails()       {}

// DecodeDetails selects the concrete shape for a conflict type and decodes
// the raw payload into it.
func DecodeDetails(t Type, raw json.RawMessage) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var target Details
	switch t {
	case TypeSchedulingOverlap:
		target = &OverlapDetails{}
	case TypeACGMEViolation, TypeConsecutiveDuty, TypeRestPeriod:
		target = &DutyHourDetails{}
	case TypeSupervisionMissing:
		target = &SupervisionDetails{}
	case TypeCapacityExceeded:
		target = &CapacityDetails{}
	case TypeAbsenceConflict:
		target = &AbsenceDetails{}
	case TypeQualificationMismatch:
		target = &QualificationDetails{}
	case TypeCoverageGap:
		target = &CoverageDetails{}
	default:
		var open GenericDetails
		if err := json.Unmarshal(raw, &open); err != nil {
			return nil, fmt.Errorf("conflict: decode %s details: %w", t, err)
		}
		return open, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("conflict: decode %s details: %w", t, err)
	}
	return target, nil
}

// UnmarshalJSON decodes a conflict, selecting the details shape from the
// conflict type.
func (c *Conflict) UnmarshalJSON(data []byte) error {
	type alias Conflict
	payload := struct {
		*alias
		Details json.RawMessage `json:"details,omitempty"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	details, err := DecodeDetails(c.Type, payload.Details)
	if err != nil {
		return err
	}
	c.Details = details
	return nil
}
