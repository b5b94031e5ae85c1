package notify_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/notify"
	"github.com/nhle/study-planner/tests/testutil"
)

func always() bool { return true }

// nextDelivery runs the wait command in a goroutine so tests can bound
// the wait with a timeout.
func nextDelivery(t *testing.T, s *notify.Service, timeout time.Duration) (notify.DeliveryMsg, bool) {
	t.Helper()

	ch := make(chan tea.Msg, 1)
	go func() { ch <- s.WaitForDelivery()() }()

	select {
	case msg := <-ch:
		d, ok := msg.(notify.DeliveryMsg)
		return d, ok
	case <-time.After(timeout):
		return notify.DeliveryMsg{}, false
	}
}

func TestService_FireAndCancel(t *testing.T) {
	t.Run("fired reminder is delivered", func(t *testing.T) {
		s := notify.NewService(always, nil)
		defer s.Stop()

		handle, err := s.ScheduleAt(0, notify.Payload{TaskID: "t1", Title: "Read"})
		if err != nil {
			t.Fatalf("schedule: %v", err)
		}

		d, ok := nextDelivery(t, s, 2*time.Second)
		if !ok {
			t.Fatal("expected a delivery")
		}
		if d.Delivery.Handle != handle {
			t.Errorf("expected handle %q, got %q", handle, d.Delivery.Handle)
		}
		if d.Delivery.Payload.TaskID != "t1" {
			t.Errorf("expected task t1, got %q", d.Delivery.Payload.TaskID)
		}
		if s.Pending() != 0 {
			t.Errorf("expected no pending timers, got %d", s.Pending())
		}
	})

	t.Run("cancelled reminder never fires", func(t *testing.T) {
		s := notify.NewService(always, nil)
		defer s.Stop()

		handle, _ := s.ScheduleAt(3600, notify.Payload{TaskID: "t1"})
		if s.Pending() != 1 {
			t.Fatalf("expected 1 pending timer, got %d", s.Pending())
		}

		if err := s.Cancel(handle); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if s.Pending() != 0 {
			t.Errorf("expected no pending timers, got %d", s.Pending())
		}
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		s := notify.NewService(always, nil)
		defer s.Stop()

		handle, _ := s.ScheduleAt(3600, notify.Payload{})
		if err := s.Cancel(handle); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		if err := s.Cancel(handle); err != nil {
			t.Fatalf("second cancel: %v", err)
		}
		if err := s.Cancel(notify.Handle("never-existed")); err != nil {
			t.Fatalf("unknown handle: %v", err)
		}
	})

	t.Run("schedule after stop arms nothing", func(t *testing.T) {
		s := notify.NewService(always, nil)
		s.Stop()

		if _, err := s.ScheduleAt(0, notify.Payload{TaskID: "t1"}); err != notify.ErrStopped {
			t.Fatalf("expected ErrStopped, got %v", err)
		}
		if s.Pending() != 0 {
			t.Errorf("expected no pending timers, got %d", s.Pending())
		}
		if _, ok := nextDelivery(t, s, 100*time.Millisecond); ok {
			t.Error("expected no delivery from a stopped service")
		}
	})

	t.Run("stop suppresses pending timers", func(t *testing.T) {
		s := notify.NewService(always, nil)

		s.ScheduleAt(0, notify.Payload{TaskID: "t1"})
		s.Stop()

		if s.Pending() != 0 {
			t.Errorf("expected no pending timers, got %d", s.Pending())
		}
	})
}

func TestService_DeliveryLog(t *testing.T) {
	t.Run("fired reminder is logged", func(t *testing.T) {
		st := testutil.NewTestStore(t)
		s := notify.NewService(always, st)
		defer s.Stop()

		s.ScheduleAt(0, notify.Payload{TaskID: "t1", Title: "Read chapter 4"})
		if _, ok := nextDelivery(t, s, 2*time.Second); !ok {
			t.Fatal("expected a delivery")
		}

		// The log write happens after the channel send; poll briefly.
		deadline := time.Now().Add(2 * time.Second)
		for {
			records, err := s.RecentDeliveries(context.Background())
			if err != nil {
				t.Fatalf("recent deliveries: %v", err)
			}
			if len(records) == 1 {
				if records[0].TaskID != "t1" || records[0].Title != "Read chapter 4" {
					t.Fatalf("unexpected record %+v", records[0])
				}
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf("expected 1 log record, got %d", len(records))
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	t.Run("simultaneous fires all reach the log", func(t *testing.T) {
		st := testutil.NewTestStore(t)
		s := notify.NewService(always, st)
		defer s.Stop()

		const fires = 8
		for i := 0; i < fires; i++ {
			s.ScheduleAt(0, notify.Payload{TaskID: fmt.Sprintf("t%d", i)})
		}
		for i := 0; i < fires; i++ {
			if _, ok := nextDelivery(t, s, 2*time.Second); !ok {
				t.Fatalf("expected delivery %d", i)
			}
		}

		deadline := time.Now().Add(2 * time.Second)
		for {
			records, err := s.RecentDeliveries(context.Background())
			if err != nil {
				t.Fatalf("recent deliveries: %v", err)
			}
			if len(records) == fires {
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf("expected %d log records, got %d", fires, len(records))
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
}
