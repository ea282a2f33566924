// internal/tui/controller.go
//
// Controller is the dashboard's state machine, kept free of bubbletea so
// transitions can be tested without a rendering layer. It owns the active
// view, the conflict the detail panels point at, the keyboard-focused row,
// and the batch checkbox set. App translates key events into these calls
// and renders whatever state results.

package tui

import (
	"github.com/medroster/conflictdeck/internal/selection"
)

// View identifies the primary panel the dashboard is showing.
type View string

const (
	ViewList        View = "list"
	ViewSuggestions View = "suggestions"
	ViewHistory     View = "history"
	ViewBatch       View = "batch"
)

// Effect tells the caller what follow-up work a transition requires.
type Effect int

const (
	EffectNone Effect = iota
	EffectRefetchList
)

// Controller holds the dashboard's view state. The override form is modal
// and orthogonal: opening it never changes the active view, and closing it
// without submitting returns to whichever view it was invoked from.
type Controller struct {
	view               View
	selectedConflictID string
	patternsMode       bool
	focusedRow         int
	rowCount           int
	overrideOpen       bool
	batch              *selection.Set
}

// NewController starts at the list view with nothing selected.
func NewController() *Controller {
	return &Controller{
		view:  ViewList,
		batch: selection.New(),
	}
}

// ActiveView reports the primary panel currently shown.
func (c *Controller) ActiveView() View {
	return c.view
}

// SelectedConflictID is the conflict the detail panels are scoped to.
func (c *Controller) SelectedConflictID() string {
	return c.selectedConflictID
}

// PatternsMode reports whether the history view is showing global patterns
// instead of a single conflict's timeline.
func (c *Controller) PatternsMode() bool {
	return c.view == ViewHistory && c.patternsMode
}

// Batch is the checkbox set driving batch actions.
func (c *Controller) Batch() *selection.Set {
	return c.batch
}

// OverrideOpen reports whether the override modal is showing.
func (c *Controller) OverrideOpen() bool {
	return c.overrideOpen
}

// FocusedRow is the index of the keyboard-focused list row.
func (c *Controller) FocusedRow() int {
	return c.focusedRow
}

// ListReloaded replaces the visible conflict set after a refetch. The
// batch selection is cleared (it may reference rows no longer visible)
// and the focused row is clamped into the new page.
func (c *Controller) ListReloaded(ids []string) {
	c.batch.SetVisible(ids)
	c.rowCount = len(ids)
	c.clampFocus()
}

// MoveFocus shifts the focused row by delta, clamped to the page.
func (c *Controller) MoveFocus(delta int) {
	c.focusedRow += delta
	c.clampFocus()
}

func (c *Controller) clampFocus() {
	if c.rowCount == 0 {
		c.focusedRow = 0
		return
	}
	if c.focusedRow < 0 {
		c.focusedRow = 0
	}
	if c.focusedRow >= c.rowCount {
		c.focusedRow = c.rowCount - 1
	}
}

// OpenSuggestions scopes the detail panels to id and shows its
// resolution suggestions. A blank id is a no-op.
func (c *Controller) OpenSuggestions(id string) bool {
	if id == "" {
		return false
	}
	c.view = ViewSuggestions
	c.selectedConflictID = id
	c.patternsMode = false
	return true
}

// OpenHistory shows the timeline for one conflict.
func (c *Controller) OpenHistory(id string) bool {
	if id == "" {
		return false
	}
	c.view = ViewHistory
	c.selectedConflictID = id
	c.patternsMode = false
	return true
}

// OpenPatterns shows the global recurring-pattern view. No conflict
// selection is required.
func (c *Controller) OpenPatterns() {
	c.view = ViewHistory
	c.patternsMode = true
	c.selectedConflictID = ""
}

// CloseDetail leaves any conflict-scoped view and returns to the list
// with the detail selection cleared.
func (c *Controller) CloseDetail() {
	c.view = ViewList
	c.selectedConflictID = ""
	c.patternsMode = false
}

// OpenBatch shows the batch confirmation view. Requires at least one
// checked conflict.
func (c *Controller) OpenBatch() bool {
	if c.batch.Empty() {
		return false
	}
	c.view = ViewBatch
	return true
}

// FinishBatch leaves the batch view after the run completed or was
// cancelled. Either way the checkbox set is cleared and the list is
// refetched so row state reflects the backend.
func (c *Controller) FinishBatch() Effect {
	c.view = ViewList
	c.batch.Clear()
	return EffectRefetchList
}

// OpenOverride shows the override modal. It can only be invoked from the
// list or suggestions views and does not change the active view.
func (c *Controller) OpenOverride(conflictID string) bool {
	if c.overrideOpen || conflictID == "" {
		return false
	}
	if c.view != ViewList && c.view != ViewSuggestions {
		return false
	}
	c.overrideOpen = true
	c.selectedConflictID = conflictID
	return true
}

// CancelOverride dismisses the modal, keeping the view it was invoked
// from intact.
func (c *Controller) CancelOverride() {
	c.overrideOpen = false
}

// OverrideSubmitted handles a successful override: the modal closes, the
// target conflict is now resolved server-side, and the dashboard returns
// to a fresh list.
func (c *Controller) OverrideSubmitted() Effect {
	c.overrideOpen = false
	return c.ResolutionApplied()
}

// ResolutionApplied handles any successful single-conflict mutation
// (apply suggestion, manual resolve, status update): back to the list
// with a refetch.
func (c *Controller) ResolutionApplied() Effect {
	c.view = ViewList
	c.selectedConflictID = ""
	c.patternsMode = false
	return EffectRefetchList
}
