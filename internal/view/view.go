// Package view derives presentation state from the task collection and an
// explicit "now". Everything here is pure and stateless; results are
// recomputed on every render because the classification of a task drifts
// as the clock advances.
package view

import (
	"math"
	"sort"
	"time"

	"github.com/nhle/study-planner/internal/model"
)

// Stats are the aggregate numbers shown above the task list.
type Stats struct {
	// ActiveCount is the number of incomplete tasks.
	ActiveCount int

	// InProgressCount is the number of incomplete tasks whose window
	// contains now.
	InProgressCount int

	// CompletionPercentage is completed-and-due over due, rounded to the
	// nearest integer, always within [0, 100]. Zero when no task is due.
	CompletionPercentage int
}

// ComputeStats derives the aggregate statistics at the given instant.
func ComputeStats(tasks []model.Task, now time.Time) Stats {
	var s Stats
	var due, completedAndDue int

	for _, t := range tasks {
		c := model.Classify(t, now)
		if !t.Completed {
			s.ActiveCount++
		}
		if c.InProgress {
			s.InProgressCount++
		}
		if c.Due {
			due++
			if t.Completed {
				completedAndDue++
			}
		}
	}

	if due > 0 {
		s.CompletionPercentage = int(math.Round(100 * float64(completedAndDue) / float64(due)))
	}
	return s
}

// Sort orders tasks for display: incomplete before completed, then among
// incomplete tasks not-yet-ended before ended, then ascending start time.
// The sort is
// stable, so equal-key ties keep their relative input order. The input
// slice is not modified.
func Sort(tasks []model.Task, now time.Time) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}

		// The ended split only applies among incomplete tasks; completed
		// tasks order by start time alone.
		if !a.Completed {
			aEnded := model.Classify(a, now).Ended
			bEnded := model.Classify(b, now).Ended
			if aEnded != bEnded {
				return !aEnded
			}
		}

		return a.StartTime.Before(b.StartTime)
	})

	return sorted
}
