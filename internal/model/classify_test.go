package model

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	window := func(startOffset, endOffset time.Duration) Task {
		return Task{
			StartTime: now.Add(startOffset),
			EndTime:   now.Add(endOffset),
		}
	}

	t.Run("future task", func(t *testing.T) {
		c := Classify(window(time.Hour, 2*time.Hour), now)
		if c.Ended || c.InProgress || c.Due {
			t.Errorf("expected all false, got %+v", c)
		}
	})

	t.Run("window contains now", func(t *testing.T) {
		c := Classify(window(-time.Hour, time.Hour), now)
		if c.Ended {
			t.Error("expected not ended")
		}
		if !c.InProgress {
			t.Error("expected in progress")
		}
		if !c.Due {
			t.Error("expected due")
		}
	})

	t.Run("window in the past", func(t *testing.T) {
		c := Classify(window(-2*time.Hour, -time.Hour), now)
		if !c.Ended {
			t.Error("expected ended")
		}
		if c.InProgress {
			t.Error("expected not in progress")
		}
		if !c.Due {
			t.Error("expected due")
		}
	})

	t.Run("completed task in window is not in progress", func(t *testing.T) {
		task := window(-time.Hour, time.Hour)
		task.Completed = true
		c := Classify(task, now)
		if c.InProgress {
			t.Error("expected not in progress")
		}
		if !c.Due {
			t.Error("expected due")
		}
	})

	t.Run("completed future task is due", func(t *testing.T) {
		task := window(time.Hour, 2*time.Hour)
		task.Completed = true
		c := Classify(task, now)
		if !c.Due {
			t.Error("expected completed task to count as due")
		}
		if c.InProgress {
			t.Error("expected not in progress before window")
		}
	})

	t.Run("boundary instants", func(t *testing.T) {
		atStart := window(0, time.Hour)
		c := Classify(atStart, now)
		if !c.InProgress {
			t.Error("expected in progress exactly at start")
		}
		if !c.Due {
			t.Error("expected due exactly at start")
		}

		atEnd := window(-time.Hour, 0)
		c = Classify(atEnd, now)
		if c.Ended {
			t.Error("expected not ended exactly at end")
		}
		if !c.InProgress {
			t.Error("expected in progress exactly at end")
		}
	})
}
