package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task rows.
// Classification is derived from the wall clock at render time, so a row
// flips from upcoming to in-progress without any mutation.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	now := time.Now()
	c := model.Classify(task, now)

	var prefix string
	if task.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	catBadge := theme.CategoryBadgeStyle.Render(task.Category)
	priBadge := theme.PriorityStyle(task.Priority).Render(string(task.Priority))
	window := theme.TimeWindowStyle.Render(formatWindow(task.StartTime, task.EndTime))

	stateBadge := ""
	switch {
	case task.Completed:
		stateBadge = theme.CompletedStyle.Render(" DONE")
	case c.InProgress:
		stateBadge = theme.InProgressStyle.Render(" IN PROGRESS")
	case c.Ended:
		stateBadge = theme.EndedStyle.Render(" ENDED")
	}

	reminder := ""
	if task.NotificationHandle != nil {
		reminder = " ⏰"
	}

	line := fmt.Sprintf(
		"%s %s %s %s  %s%s%s",
		prefix, catBadge, priBadge, task.Title, window, stateBadge, reminder,
	)

	if task.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// formatWindow renders a task's time window compactly, collapsing the
// date when start and end fall on the same day.
func formatWindow(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s – %s",
			start.Format("Jan 02 15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s",
		start.Format("Jan 02 15:04"), end.Format("Jan 02 15:04"))
}
