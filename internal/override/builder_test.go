package override

import (
	"strings"
	"testing"
	"time"

	"github.com/medroster/conflictdeck/internal/conflict"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func readyBuilder(c conflict.Conflict) *Builder {
	b := NewBuilder(c).WithClock(func() time.Time { return testNow })
	b.Reason = "coverage emergency"
	b.Justification = "no eligible resident available for the shift"
	b.RiskAcknowledged = true
	if b.IsAcgmeRelated {
		b.AcgmeExceptionType = conflict.AcgmeEmergencyCoverage
	}
	if b.SupervisorApprovalRequired {
		b.SupervisorApproved = true
	}
	return b
}

func TestDefaultsFromConflict(t *testing.T) {
	acgme := NewBuilder(conflict.Conflict{ID: "c1", Type: conflict.TypeRestPeriod, Severity: conflict.SeverityCritical})
	if !acgme.IsAcgmeRelated {
		t.Fatalf("rest_period conflicts must default to ACGME-related")
	}
	if !acgme.SupervisorApprovalRequired {
		t.Fatalf("critical conflicts must default to requiring supervisor approval")
	}
	plain := NewBuilder(conflict.Conflict{ID: "c2", Type: conflict.TypeSchedulingOverlap, Severity: conflict.SeverityMedium})
	if plain.IsAcgmeRelated || plain.SupervisorApprovalRequired {
		t.Fatalf("non-acgme medium conflict must default both flags off")
	}
}

func TestValidityRequiredFields(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeSchedulingOverlap, Severity: conflict.SeverityLow}
	b := readyBuilder(c)
	if !b.IsValid() {
		t.Fatalf("expected ready builder to be valid, problems: %v", b.Problems())
	}
	b.Reason = ""
	if b.IsValid() {
		t.Fatalf("empty reason must invalidate")
	}
	b = readyBuilder(c)
	b.Justification = ""
	if b.IsValid() {
		t.Fatalf("empty justification must invalidate")
	}
	b = readyBuilder(c)
	b.RiskAcknowledged = false
	if b.IsValid() {
		t.Fatalf("unchecked risk acknowledgement must invalidate")
	}
}

func TestTemporaryOverrideRequiresFutureExpiry(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeCoverageGap, Severity: conflict.SeverityLow}
	b := readyBuilder(c)
	b.OverrideType = conflict.OverrideTemporary
	if b.IsValid() {
		t.Fatalf("temporary override without expiry must invalidate")
	}
	past := testNow.AddDate(0, 0, -1)
	b.ExpiresAt = &past
	if b.IsValid() {
		t.Fatalf("past expiry must invalidate")
	}
	// Same calendar day counts as "no earlier than the current date".
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	b.ExpiresAt = &today
	if !b.IsValid() {
		t.Fatalf("same-day expiry must be valid, problems: %v", b.Problems())
	}
}

func TestAcgmeExceptionRequirement(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeSchedulingOverlap, Severity: conflict.SeverityLow}
	b := readyBuilder(c)
	b.OverrideType = conflict.OverridePermanent
	b.IsAcgmeRelated = true
	b.AcgmeExceptionType = ""
	if b.IsValid() {
		t.Fatalf("ACGME-related override without exception type must invalidate")
	}
	b.AcgmeExceptionType = conflict.AcgmeEmergencyCoverage
	if !b.IsValid() {
		t.Fatalf("setting emergency_coverage must make the override valid, problems: %v", b.Problems())
	}
	b.AcgmeExceptionType = conflict.AcgmeExceptionType("convenience")
	if b.IsValid() {
		t.Fatalf("exception type outside the enumeration must invalidate")
	}
}

func TestSupervisorApprovalGate(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeSupervisionMissing, Severity: conflict.SeverityCritical}
	b := readyBuilder(c)
	b.SupervisorApproved = false
	if b.IsValid() {
		t.Fatalf("required-but-missing supervisor approval must invalidate")
	}
	// The requirement itself is editable.
	b.SupervisorApprovalRequired = false
	if !b.IsValid() {
		t.Fatalf("clearing the requirement must make the override valid, problems: %v", b.Problems())
	}
}

func TestBuildRefusesInvalid(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeSchedulingOverlap, Severity: conflict.SeverityLow}
	b := readyBuilder(c)
	b.Reason = ""
	if _, err := b.Build(); err == nil {
		t.Fatalf("build must fail while invalid")
	} else if !strings.Contains(err.Error(), "reason") {
		t.Fatalf("error should name the first problem, got %v", err)
	}
}

func TestBuildProducesRequestBody(t *testing.T) {
	c := conflict.Conflict{ID: "c1", Type: conflict.TypeConsecutiveDuty, Severity: conflict.SeverityCritical}
	b := readyBuilder(c)
	b.OverrideType = conflict.OverrideTemporary
	expires := testNow.AddDate(0, 0, 14)
	b.ExpiresAt = &expires
	b.SupervisorID = "attending-7"
	ovr, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if ovr.OverrideType != conflict.OverrideTemporary || ovr.ExpiresAt == nil {
		t.Fatalf("temporary override must carry expiry: %+v", ovr)
	}
	if !ovr.IsAcgmeRelated || ovr.AcgmeExceptionType != conflict.AcgmeEmergencyCoverage {
		t.Fatalf("acgme metadata missing: %+v", ovr)
	}
	if !ovr.SupervisorApprovalRequired || !ovr.SupervisorApproved || ovr.SupervisorID != "attending-7" {
		t.Fatalf("supervisor metadata missing: %+v", ovr)
	}
}
