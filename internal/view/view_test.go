package view

import (
	"testing"
	"time"

	"github.com/nhle/study-planner/internal/model"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := func(id string, startOffset, endOffset time.Duration, completed bool) model.Task {
		return model.Task{
			ID:        id,
			StartTime: now.Add(startOffset),
			EndTime:   now.Add(endOffset),
			Completed: completed,
		}
	}

	t.Run("empty collection", func(t *testing.T) {
		s := ComputeStats(nil, now)
		if s.ActiveCount != 0 || s.InProgressCount != 0 || s.CompletionPercentage != 0 {
			t.Errorf("expected zero stats, got %+v", s)
		}
	})

	t.Run("no due tasks yields zero percentage", func(t *testing.T) {
		tasks := []model.Task{
			task("a", time.Hour, 2*time.Hour, false),
			task("b", 3*time.Hour, 4*time.Hour, false),
		}
		s := ComputeStats(tasks, now)
		if s.CompletionPercentage != 0 {
			t.Errorf("expected 0%%, got %d%%", s.CompletionPercentage)
		}
		if s.ActiveCount != 2 {
			t.Errorf("expected 2 active, got %d", s.ActiveCount)
		}
	})

	t.Run("mixed collection", func(t *testing.T) {
		tasks := []model.Task{
			task("done-past", -4*time.Hour, -3*time.Hour, true),
			task("open-past", -3*time.Hour, -2*time.Hour, false),
			task("in-progress", -time.Hour, time.Hour, false),
			task("future", 2*time.Hour, 3*time.Hour, false),
		}
		s := ComputeStats(tasks, now)
		if s.ActiveCount != 3 {
			t.Errorf("expected 3 active, got %d", s.ActiveCount)
		}
		if s.InProgressCount != 1 {
			t.Errorf("expected 1 in progress, got %d", s.InProgressCount)
		}
		// 3 due (done-past, open-past, in-progress), 1 completed: 33%.
		if s.CompletionPercentage != 33 {
			t.Errorf("expected 33%%, got %d%%", s.CompletionPercentage)
		}
	})

	t.Run("completed future task counts as due", func(t *testing.T) {
		tasks := []model.Task{
			task("done-future", time.Hour, 2*time.Hour, true),
		}
		s := ComputeStats(tasks, now)
		if s.CompletionPercentage != 100 {
			t.Errorf("expected 100%%, got %d%%", s.CompletionPercentage)
		}
	})

	t.Run("percentage rounds to nearest integer", func(t *testing.T) {
		tasks := []model.Task{
			task("a", -2*time.Hour, -time.Hour, true),
			task("b", -2*time.Hour, -time.Hour, true),
			task("c", -2*time.Hour, -time.Hour, false),
		}
		s := ComputeStats(tasks, now)
		// 2/3 rounds to 67.
		if s.CompletionPercentage != 67 {
			t.Errorf("expected 67%%, got %d%%", s.CompletionPercentage)
		}
	})
}

func TestSort(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := func(id string, startOffset, endOffset time.Duration, completed bool) model.Task {
		return model.Task{
			ID:        id,
			StartTime: now.Add(startOffset),
			EndTime:   now.Add(endOffset),
			Completed: completed,
		}
	}

	ids := func(tasks []model.Task) []string {
		out := make([]string, len(tasks))
		for i, tk := range tasks {
			out[i] = tk.ID
		}
		return out
	}

	t.Run("three tier ordering", func(t *testing.T) {
		tasks := []model.Task{
			task("completed", -time.Hour, time.Hour, true),
			task("ended", -3*time.Hour, -2*time.Hour, false),
			task("later", 2*time.Hour, 3*time.Hour, false),
			task("sooner", time.Hour, 90*time.Minute, false),
		}
		got := ids(Sort(tasks, now))
		want := []string{"sooner", "later", "ended", "completed"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("position %d: expected %s, got %v", i, want[i], got)
			}
		}
	})

	t.Run("completed tasks order by start time regardless of ended", func(t *testing.T) {
		tasks := []model.Task{
			task("late-open", time.Hour, 2*time.Hour, true),
			task("early-ended", -3*time.Hour, -2*time.Hour, true),
		}
		got := ids(Sort(tasks, now))
		if got[0] != "early-ended" || got[1] != "late-open" {
			t.Errorf("expected ascending start among completed tasks, got %v", got)
		}
	})

	t.Run("ended split applies among incomplete tasks", func(t *testing.T) {
		tasks := []model.Task{
			task("ended-early", -3*time.Hour, -2*time.Hour, false),
			task("open-late", time.Hour, 2*time.Hour, false),
		}
		got := ids(Sort(tasks, now))
		if got[0] != "open-late" || got[1] != "ended-early" {
			t.Errorf("expected not-yet-ended first among incomplete tasks, got %v", got)
		}
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		tasks := []model.Task{
			task("first", time.Hour, 2*time.Hour, false),
			task("second", time.Hour, 3*time.Hour, false),
		}
		got := ids(Sort(tasks, now))
		if got[0] != "first" || got[1] != "second" {
			t.Errorf("expected input order preserved for equal starts, got %v", got)
		}
	})

	t.Run("input slice unchanged", func(t *testing.T) {
		tasks := []model.Task{
			task("b", 2*time.Hour, 3*time.Hour, false),
			task("a", time.Hour, 2*time.Hour, false),
		}
		Sort(tasks, now)
		if tasks[0].ID != "b" {
			t.Errorf("expected input untouched, got %v", ids(tasks))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		tasks := []model.Task{
			task("completed", -time.Hour, time.Hour, true),
			task("ended", -3*time.Hour, -2*time.Hour, false),
			task("sooner", time.Hour, 90*time.Minute, false),
		}
		once := Sort(tasks, now)
		twice := Sort(once, now)
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Fatalf("expected identical order, got %v then %v", ids(once), ids(twice))
			}
		}
	})
}
