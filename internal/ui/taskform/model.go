package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/theme"
)

// timeLayout is the wall-clock format accepted by the start/end inputs.
const timeLayout = "2006-01-02 15:04"

// TaskSubmitMsg is dispatched when the user submits the form. EditID is
// empty for creation.
type TaskSubmitMsg struct {
	Draft  model.Draft
	EditID string
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title          string
	description    string
	category       string
	customCategory string
	priority       string
	start          string
	end            string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			category: string(model.CategoryStudy),
			priority: string(model.PriorityMedium),
		},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task, defaulting
// the window to the next free hour.
func (m *Model) StartCreate(now time.Time) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.category = string(model.CategoryStudy)
	m.fb.customCategory = ""
	m.fb.priority = string(model.PriorityMedium)

	start := now.Truncate(time.Hour).Add(time.Hour)
	m.fb.start = start.Format(timeLayout)
	m.fb.end = start.Add(time.Hour).Format(timeLayout)

	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	d := model.DraftOf(task)

	m.editMode = true
	m.editID = task.ID
	m.fb.title = d.Title
	m.fb.description = d.Description
	m.fb.category = string(d.Category)
	m.fb.customCategory = d.CustomCategory
	m.fb.priority = string(d.Priority)
	m.fb.start = d.StartTime.Format(timeLayout)
	m.fb.end = d.EndTime.Format(timeLayout)

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(string(c), string(c))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Add more details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOpts...).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Custom Category").
			Placeholder("Only used when category is Other").
			Value(&m.fb.customCategory),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Low", string(model.PriorityLow)),
				huh.NewOption("Medium", string(model.PriorityMedium)),
				huh.NewOption("High", string(model.PriorityHigh)),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Start").
			Placeholder(timeLayout).
			Value(&m.fb.start).
			Validate(validateTime),
		huh.NewInput().
			Title("End").
			Placeholder(timeLayout).
			Value(&m.fb.end).
			Validate(validateTime),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit converts the bindings into a draft. Cross-field rules
// (window order, future start, custom category) are enforced by the
// repository's validation, whose error the root model surfaces.
func (m Model) handleSubmit() tea.Cmd {
	start, _ := time.ParseInLocation(timeLayout, strings.TrimSpace(m.fb.start), time.Local)
	end, _ := time.ParseInLocation(timeLayout, strings.TrimSpace(m.fb.end), time.Local)

	draft := model.Draft{
		Title:          m.fb.title,
		Description:    m.fb.description,
		Category:       model.Category(m.fb.category),
		CustomCategory: m.fb.customCategory,
		Priority:       model.Priority(m.fb.priority),
		StartTime:      start,
		EndTime:        end,
	}

	editID := ""
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg { return TaskSubmitMsg{Draft: draft, EditID: editID} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateTime(s string) error {
	_, err := time.ParseInLocation(timeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("invalid time, use YYYY-MM-DD HH:MM")
	}
	return nil
}
