// internal/notify/events.go

package notify

import (
	"fmt"
	"strings"
	"time"
)

// Known push event types emitted by the scheduling backend.
const (
	EventConflictDetected = "conflict.detected"
	EventConflictUpdated  = "conflict.updated"
	EventConflictResolved = "conflict.resolved"
)

// Event is one push notification from the backend's conflict detector.
type Event struct {
	Type       string    `json:"type"`
	ConflictID string    `json:"conflict_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at,omitempty"`
	ServerTime time.Time `json:"server_time,omitempty"`
}

// Normalize applies canonical formatting before validation.
func (e *Event) Normalize() {
	if e == nil {
		return
	}
	e.Type = strings.TrimSpace(e.Type)
	e.ConflictID = strings.TrimSpace(e.ConflictID)
}

// StampServerTime overwrites ServerTime with the supplied clock reading (UTC).
func (e *Event) StampServerTime(now time.Time) {
	if e == nil {
		return
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	e.ServerTime = now.UTC()
}

// Validate enforces baseline requirements for incoming events.
func (e Event) Validate() error {
	switch e.Type {
	case EventConflictDetected, EventConflictUpdated, EventConflictResolved:
	case "":
		return fmt.Errorf("notify: event type is required")
	default:
		return fmt.Errorf("notify: unknown event type %q", e.Type)
	}
	return nil
}
