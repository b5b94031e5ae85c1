package notify

import (
	"context"
	"time"
)

// Handle is an opaque reference to a scheduled reminder, used to cancel
// it later.
type Handle string

// Payload is the reminder content delivered when the timer fires.
type Payload struct {
	// TaskID links the reminder back to its task.
	TaskID string `json:"task_id"`

	// Title and Body are the human-readable reminder text.
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Delivery is a fired reminder as surfaced to the UI.
type Delivery struct {
	Handle      Handle
	Payload     Payload
	DeliveredAt time.Time
}

// Notifier is the reminder-scheduling contract consumed by the scheduler
// adapter. Implementations must treat Cancel as idempotent: cancelling an
// unknown, expired, or already-cancelled handle is a no-op.
type Notifier interface {
	// RequestPermission reports whether reminders may be scheduled.
	// Failure to grant is a normal outcome, never an error.
	RequestPermission(ctx context.Context) bool

	// ScheduleAt schedules a one-shot reminder to fire after the given
	// number of seconds and returns its handle.
	ScheduleAt(seconds int64, payload Payload) (Handle, error)

	// Cancel stops a pending reminder.
	Cancel(handle Handle) error
}
