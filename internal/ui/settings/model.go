package settings

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/theme"
)

// SettingsSavedMsg is dispatched when the user saves the settings form.
// ResetRequested is set when the user additionally asked to wipe all
// app data; the root model confirms and performs the reset.
type SettingsSavedMsg struct {
	Config         model.AppConfig
	ResetRequested bool
}

// SettingsCancelMsg is dispatched when the user cancels the form.
type SettingsCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	notifications bool
	themeName     string
	reset         bool
}

// Model is the Bubble Tea model for the settings screen.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	cfg    model.AppConfig
	width  int
	height int
}

// New creates a new settings model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the current configuration.
func (m *Model) Start(cfg model.AppConfig) tea.Cmd {
	m.cfg = cfg
	m.fb.notifications = cfg.Notifications.Enabled
	m.fb.themeName = cfg.Display.Theme
	m.fb.reset = false

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
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
		return m, func() tea.Msg { return SettingsCancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n" + m.form.View()

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
	fields := []huh.Field{
		huh.NewConfirm().
			Title("Reminder notifications").
			Description("Schedule a reminder near each task's start time").
			Affirmative("Enabled").
			Negative("Disabled").
			Value(&m.fb.notifications),
		huh.NewSelect[string]().
			Title("Theme").
			Options(
				huh.NewOption("Default", "default"),
				huh.NewOption("Dark", "dark"),
				huh.NewOption("Light", "light"),
			).
			Value(&m.fb.themeName),
		huh.NewConfirm().
			Title("Reset all data").
			Description("Deletes every task and the profile. Pending reminders are cancelled first.").
			Affirmative("Reset").
			Negative("Keep").
			Value(&m.fb.reset),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	cfg := m.cfg
	cfg.Notifications.Enabled = m.fb.notifications
	cfg.Display.Theme = m.fb.themeName

	reset := m.fb.reset
	return func() tea.Msg { return SettingsSavedMsg{Config: cfg, ResetRequested: reset} }
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
