// Package scheduler keeps reminder notifications in lockstep with task
// records. The repository drives it: whenever a task's start time changes
// or the task is deleted, the existing handle is cancelled before any new
// reminder is scheduled, so at most one reminder is live per task.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/notify"
)

// NotifierError wraps a failure from the underlying Notifier. It is never
// surfaced as a hard failure: the task saves without a reminder and the
// error is logged.
type NotifierError struct {
	Op  string
	Err error
}

func (e *NotifierError) Error() string {
	return fmt.Sprintf("notifier %s: %v", e.Op, e.Err)
}

func (e *NotifierError) Unwrap() error { return e.Err }

// IsNotifierError reports whether err (or any error in its chain) is a
// NotifierError.
func IsNotifierError(err error) bool {
	var nerr *NotifierError
	return errors.As(err, &nerr)
}

// Adapter wraps the external Notifier with the scheduling policy of the
// task engine.
type Adapter struct {
	notifier notify.Notifier
	logger   *log.Logger
}

// New creates a scheduler adapter. logger may be nil to use the default
// logger.
func New(n notify.Notifier, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{notifier: n, logger: logger}
}

// RequestPermission reports whether reminders may be scheduled. Denial is
// a normal outcome.
func (a *Adapter) RequestPermission(ctx context.Context) bool {
	return a.notifier.RequestPermission(ctx)
}

// Schedule arms a reminder for the task's start time and returns its
// handle, or nil when permission is not granted or scheduling fails.
// A nil result never blocks saving the task.
func (a *Adapter) Schedule(ctx context.Context, task model.Task, now time.Time) *string {
	if !a.notifier.RequestPermission(ctx) {
		return nil
	}

	seconds := int64(task.StartTime.Sub(now) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	handle, err := a.notifier.ScheduleAt(seconds, notify.Payload{
		TaskID: task.ID,
		Title:  "Time to start: " + task.Title,
		Body:   task.Description,
	})
	if err != nil {
		a.logger.Printf("scheduling reminder for task %s: %v",
			task.ID, &NotifierError{Op: "schedule", Err: err})
		return nil
	}

	h := string(handle)
	return &h
}

// Cancel stops the reminder behind handle. It is idempotent: nil handles
// and already-fired or already-cancelled reminders are a no-op, and
// failures are logged and swallowed so the surrounding save or delete
// always completes.
func (a *Adapter) Cancel(handle *string) {
	if handle == nil {
		return
	}
	if err := a.notifier.Cancel(notify.Handle(*handle)); err != nil {
		a.logger.Printf("cancelling reminder %s: %v",
			*handle, &NotifierError{Op: "cancel", Err: err})
	}
}
