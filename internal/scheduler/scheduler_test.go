package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/notify"
)

type fakeNotifier struct {
	granted     bool
	nextHandle  int
	scheduled   []int64
	cancelled   []notify.Handle
	scheduleErr error
	cancelErr   error
}

func (f *fakeNotifier) RequestPermission(ctx context.Context) bool { return f.granted }

func (f *fakeNotifier) ScheduleAt(seconds int64, payload notify.Payload) (notify.Handle, error) {
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	f.nextHandle++
	f.scheduled = append(f.scheduled, seconds)
	return notify.Handle(fmt.Sprintf("h%d", f.nextHandle)), nil
}

func (f *fakeNotifier) Cancel(handle notify.Handle) error {
	f.cancelled = append(f.cancelled, handle)
	return f.cancelErr
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAdapter_Schedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("schedules seconds until start", func(t *testing.T) {
		n := &fakeNotifier{granted: true}
		a := New(n, quietLogger())

		task := model.Task{ID: "t1", Title: "Read", StartTime: now.Add(time.Hour)}
		h := a.Schedule(ctx, task, now)
		if h == nil {
			t.Fatal("expected a handle")
		}
		if len(n.scheduled) != 1 || n.scheduled[0] != 3600 {
			t.Errorf("expected 3600 seconds, got %v", n.scheduled)
		}
	})

	t.Run("delay clamps to one second", func(t *testing.T) {
		n := &fakeNotifier{granted: true}
		a := New(n, quietLogger())

		task := model.Task{ID: "t1", StartTime: now.Add(-time.Minute)}
		if h := a.Schedule(ctx, task, now); h == nil {
			t.Fatal("expected a handle")
		}
		if n.scheduled[0] != 1 {
			t.Errorf("expected clamp to 1 second, got %d", n.scheduled[0])
		}
	})

	t.Run("nil without permission", func(t *testing.T) {
		n := &fakeNotifier{granted: false}
		a := New(n, quietLogger())

		task := model.Task{ID: "t1", StartTime: now.Add(time.Hour)}
		if h := a.Schedule(ctx, task, now); h != nil {
			t.Errorf("expected nil handle, got %q", *h)
		}
		if len(n.scheduled) != 0 {
			t.Error("expected no schedule call without permission")
		}
	})

	t.Run("nil on notifier failure", func(t *testing.T) {
		n := &fakeNotifier{granted: true, scheduleErr: errors.New("boom")}
		a := New(n, quietLogger())

		task := model.Task{ID: "t1", StartTime: now.Add(time.Hour)}
		if h := a.Schedule(ctx, task, now); h != nil {
			t.Errorf("expected nil handle, got %q", *h)
		}
	})
}

func TestAdapter_Cancel(t *testing.T) {
	t.Run("nil handle is a no-op", func(t *testing.T) {
		n := &fakeNotifier{}
		a := New(n, quietLogger())
		a.Cancel(nil)
		if len(n.cancelled) != 0 {
			t.Error("expected no cancel call")
		}
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		n := &fakeNotifier{cancelErr: errors.New("gone")}
		a := New(n, quietLogger())
		h := "b"
		a.Cancel(&h)
		if len(n.cancelled) != 1 {
			t.Errorf("expected one cancel call, got %d", len(n.cancelled))
		}
	})
}

func TestNotifierError_Unwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &NotifierError{Op: "schedule", Err: cause}
	if !IsNotifierError(err) {
		t.Error("expected IsNotifierError to match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
}
