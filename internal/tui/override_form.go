// internal/tui/override_form.go
//
// Modal form for building a manual override. Field state lives in the
// override.Builder; this wrapper only adds keyboard navigation and text
// entry on top of it. The submit action is gated on Builder.IsValid, so
// an incomplete override can never be sent.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/medroster/conflictdeck/internal/conflict"
	"github.com/medroster/conflictdeck/internal/override"
)

type overrideField int

const (
	fieldOverrideType overrideField = iota
	fieldReason
	fieldJustification
	fieldExpiresAt
	fieldAcgmeRelated
	fieldAcgmeException
	fieldApprovalRequired
	fieldApproved
	fieldSupervisorID
	fieldRiskAck
	fieldCount
)

const expiryLayout = "2006-01-02"

type overrideForm struct {
	builder *override.Builder
	title   string

	focus   overrideField
	editing bool
	input   textinput.Model
}

func newOverrideForm(c conflict.Conflict) *overrideForm {
	input := textinput.New()
	input.CharLimit = 240
	input.Width = 48
	return &overrideForm{
		builder: override.NewBuilder(c),
		title:   fmt.Sprintf("Override · %s (%s)", c.Title, c.Severity.Label()),
		focus:   fieldOverrideType,
		input:   input,
	}
}

func (f *overrideForm) ConflictID() string {
	return f.builder.ConflictID
}

func (f *overrideForm) IsValid() bool {
	return f.builder.IsValid()
}

func (f *overrideForm) Problems() []string {
	return f.builder.Problems()
}

func (f *overrideForm) Build() (conflict.ManualOverride, error) {
	return f.builder.Build()
}

func (f *overrideForm) editingText() bool {
	return f.editing
}

// Handle processes one key event. Esc and a bare Enter on a non-text
// field are handled by the caller (cancel and submit).
func (f *overrideForm) Handle(msg tea.KeyMsg) {
	if f.editing {
		f.handleEditKey(msg)
		return
	}
	switch msg.String() {
	case "tab", "j", "down":
		f.focus = (f.focus + 1) % fieldCount
	case "shift+tab", "k", "up":
		f.focus = (f.focus - 1 + fieldCount) % fieldCount
	case " ":
		f.toggleFocused()
	case "enter", "e":
		if f.isTextField(f.focus) {
			f.beginEdit()
		}
	}
}

func (f *overrideForm) handleEditKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		f.commitEdit()
		return
	case "esc":
		f.editing = false
		f.input.Blur()
		return
	}
	f.input, _ = f.input.Update(msg)
}

func (f *overrideForm) isTextField(field overrideField) bool {
	switch field {
	case fieldReason, fieldJustification, fieldExpiresAt, fieldSupervisorID:
		return true
	}
	return false
}

func (f *overrideForm) beginEdit() {
	f.editing = true
	f.input.SetValue(f.textValue(f.focus))
	f.input.CursorEnd()
	f.input.Focus()
}

func (f *overrideForm) commitEdit() {
	value := strings.TrimSpace(f.input.Value())
	switch f.focus {
	case fieldReason:
		f.builder.Reason = value
	case fieldJustification:
		f.builder.Justification = value
	case fieldSupervisorID:
		f.builder.SupervisorID = value
	case fieldExpiresAt:
		if value == "" {
			f.builder.ExpiresAt = nil
		} else if parsed, err := time.Parse(expiryLayout, value); err == nil {
			f.builder.ExpiresAt = &parsed
		}
	}
	f.editing = false
	f.input.Blur()
}

func (f *overrideForm) textValue(field overrideField) string {
	switch field {
	case fieldReason:
		return f.builder.Reason
	case fieldJustification:
		return f.builder.Justification
	case fieldSupervisorID:
		return f.builder.SupervisorID
	case fieldExpiresAt:
		if f.builder.ExpiresAt == nil {
			return ""
		}
		return f.builder.ExpiresAt.Format(expiryLayout)
	}
	return ""
}

// toggleFocused flips booleans and cycles enums on space.
func (f *overrideForm) toggleFocused() {
	switch f.focus {
	case fieldOverrideType:
		f.builder.OverrideType = nextOverrideType(f.builder.OverrideType)
	case fieldAcgmeRelated:
		f.builder.IsAcgmeRelated = !f.builder.IsAcgmeRelated
	case fieldAcgmeException:
		f.builder.AcgmeExceptionType = nextExceptionType(f.builder.AcgmeExceptionType)
	case fieldApprovalRequired:
		f.builder.SupervisorApprovalRequired = !f.builder.SupervisorApprovalRequired
	case fieldApproved:
		f.builder.SupervisorApproved = !f.builder.SupervisorApproved
	case fieldRiskAck:
		f.builder.RiskAcknowledged = !f.builder.RiskAcknowledged
	}
}

func nextOverrideType(current conflict.OverrideType) conflict.OverrideType {
	for i, t := range conflict.OverrideTypes {
		if t == current {
			return conflict.OverrideTypes[(i+1)%len(conflict.OverrideTypes)]
		}
	}
	return conflict.OverrideTypes[0]
}

func nextExceptionType(current conflict.AcgmeExceptionType) conflict.AcgmeExceptionType {
	if current == "" {
		return conflict.AcgmeExceptionTypes[0]
	}
	for i, t := range conflict.AcgmeExceptionTypes {
		if t == current {
			if i+1 < len(conflict.AcgmeExceptionTypes) {
				return conflict.AcgmeExceptionTypes[i+1]
			}
			return ""
		}
	}
	return ""
}

type overrideRow struct {
	label string
	value string
}

// rows renders each field's label and current value for the view layer.
func (f *overrideForm) rows() []overrideRow {
	expires := "-"
	if f.builder.ExpiresAt != nil {
		expires = f.builder.ExpiresAt.Format(expiryLayout)
	}
	exception := "-"
	if f.builder.AcgmeExceptionType != "" {
		exception = f.builder.AcgmeExceptionType.Label()
	}
	return []overrideRow{
		{label: "Type", value: f.builder.OverrideType.Label()},
		{label: "Reason", value: orDash(f.builder.Reason)},
		{label: "Justification", value: orDash(f.builder.Justification)},
		{label: "Expires", value: expires},
		{label: "ACGME related", value: checkbox(f.builder.IsAcgmeRelated)},
		{label: "ACGME exception", value: exception},
		{label: "Approval required", value: checkbox(f.builder.SupervisorApprovalRequired)},
		{label: "Supervisor approved", value: checkbox(f.builder.SupervisorApproved)},
		{label: "Supervisor ID", value: orDash(f.builder.SupervisorID)},
		{label: "Risk acknowledged", value: checkbox(f.builder.RiskAcknowledged)},
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
