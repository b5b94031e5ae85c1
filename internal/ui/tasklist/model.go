package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/keys"
	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/theme"
	"github.com/nhle/study-planner/internal/view"
)

// Model is the task list view component. It renders a snapshot of the
// collection pushed in by the root model; ordering and stats are
// re-derived from the clock on every SetTasks call.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	stats  view.Stats
	width  int
	height int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetTasks replaces the displayed snapshot, sorting it and recomputing
// stats at the given instant.
func (m *Model) SetTasks(tasks []model.Task, now time.Time) tea.Cmd {
	m.stats = view.ComputeStats(tasks, now)

	sorted := view.Sort(tasks, now)
	items := make([]list.Item, len(sorted))
	for i, t := range sorted {
		items[i] = TaskItem{Task: t}
	}
	return m.list.SetItems(items)
}

// Selected returns the task under the cursor, or nil when the list is
// empty.
func (m Model) Selected() *model.Task {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return nil
	}
	t := item.Task
	return &t
}

// Stats returns the aggregate numbers of the current snapshot.
func (m Model) Stats() view.Stats {
	return m.stats
}

// StatsLine renders the aggregate numbers for the header.
func (m Model) StatsLine() string {
	return fmt.Sprintf("%d active · %d in progress · %d%% done",
		m.stats.ActiveCount, m.stats.InProgressCount, m.stats.CompletionPercentage)
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return theme.HelpStyle.Render("\n  No tasks yet. Press 'a' to add your first task.")
	}
	return m.list.View()
}
