package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/keys"
	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/notify"
	"github.com/nhle/study-planner/internal/repo"
	"github.com/nhle/study-planner/internal/theme"
	"github.com/nhle/study-planner/internal/ui"
	helpview "github.com/nhle/study-planner/internal/ui/help"
	"github.com/nhle/study-planner/internal/ui/profileform"
	"github.com/nhle/study-planner/internal/ui/settings"
	"github.com/nhle/study-planner/internal/ui/taskform"
	"github.com/nhle/study-planner/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTaskCreate
	ViewTaskEdit
	ViewProfile
	ViewSettings
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, the busy
// state that serializes mutations, and access to the repositories.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	cfg         *model.AppConfig
	cfgPath     string

	tasks     *repo.TaskRepository
	profiles  *repo.ProfileRepository
	reminders *notify.Service
	keys      *keys.KeyMap

	taskList     tasklist.Model
	taskForm     taskform.Model
	profileForm  profileform.Model
	settingsView settings.Model
	helpView     helpview.Model

	// busy blocks a second mutating operation until the in-flight one
	// settles. Each user action triggers at most one asynchronous step.
	busy bool

	flash      string
	flashIsErr bool
	ready      bool
}

// New creates the root application model.
func New(
	cfg *model.AppConfig,
	cfgPath string,
	tasks *repo.TaskRepository,
	profiles *repo.ProfileRepository,
	reminders *notify.Service,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewList,
		cfg:          cfg,
		cfgPath:      cfgPath,
		tasks:        tasks,
		profiles:     profiles,
		reminders:    reminders,
		keys:         k,
		taskList:     tasklist.New(k, 80, 24),
		taskForm:     taskform.New(80, 24),
		profileForm:  profileform.New(80, 24),
		settingsView: settings.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
	}
}

// Init restores reminders left over from the previous run, loads the
// task list, and subscribes to reminder deliveries.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.restoreAndLoad(),
		m.reminders.WaitForDelivery(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.profileForm.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	case tasksLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
			return m, nil
		}
		return m, m.taskList.SetTasks(msg.tasks, msg.now)

	case taskSavedResultMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
		} else {
			m.setFlash("Task saved")
		}
		return m, m.loadTasks()

	case taskDeletedResultMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
		} else {
			m.setFlash("Task deleted")
		}
		return m, m.loadTasks()

	case notify.DeliveryMsg:
		m.setFlash("Reminder: " + msg.Delivery.Payload.Title)
		return m, tea.Batch(
			m.loadTasks(),
			m.reminders.WaitForDelivery(),
		)

	case taskform.TaskSubmitMsg:
		m.currentView = ViewList
		m.busy = true
		if msg.EditID != "" {
			return m, m.updateTask(msg.EditID, msg.Draft)
		}
		return m, m.createTask(msg.Draft)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
			return m, nil
		}
		m.currentView = ViewProfile
		return m, m.profileForm.Start(msg.profile)

	case profileform.ProfileSubmitMsg:
		m.currentView = ViewList
		m.busy = true
		return m, m.saveProfile(msg.Profile, msg.AvatarPath)

	case profileform.ProfileFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case profileSavedResultMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
		} else {
			m.setFlash("Profile saved")
		}
		return m, nil

	case settings.SettingsSavedMsg:
		m.currentView = ViewList
		*m.cfg = msg.Config
		if msg.ResetRequested {
			m.busy = true
			return m, tea.Batch(m.saveConfig(), m.resetAll())
		}
		return m, m.saveConfig()

	case settings.SettingsCancelMsg:
		m.currentView = ViewList
		return m, nil

	case configSavedResultMsg:
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
		}
		return m, nil

	case resetDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(friendlyError(msg.err))
		} else {
			m.setFlash("All data cleared")
		}
		return m, m.loadTasks()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleKeys routes key input: global bindings first, then the list
// bindings, then the active view.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.reminders.Stop()
		return m, tea.Quit
	}

	if m.currentView != ViewList {
		if m.currentView == ViewHelp && (msg.String() == "esc" || msg.String() == "?" || msg.String() == "q") {
			m.currentView = ViewList
			return m, nil
		}
		return m.updateActiveView(msg)
	}

	switch msg.String() {
	case "q":
		m.reminders.Stop()
		return m, tea.Quit

	case "?":
		m.currentView = ViewHelp
		return m, nil

	case "a":
		if m.busy {
			return m, nil
		}
		m.currentView = ViewTaskCreate
		return m, m.taskForm.StartCreate(m.tasks.Now())

	case "e":
		if m.busy {
			return m, nil
		}
		if t := m.taskList.Selected(); t != nil {
			m.currentView = ViewTaskEdit
			return m, m.taskForm.StartEdit(*t)
		}
		return m, nil

	case "d":
		if m.busy {
			return m, nil
		}
		if t := m.taskList.Selected(); t != nil {
			m.busy = true
			return m, m.deleteTask(t.ID)
		}
		return m, nil

	case " ", "x":
		if m.busy {
			return m, nil
		}
		if t := m.taskList.Selected(); t != nil {
			m.busy = true
			return m, m.toggleTask(t.ID)
		}
		return m, nil

	case "p":
		return m, m.loadProfile()

	case "s":
		m.currentView = ViewSettings
		return m, m.settingsView.Start(*m.cfg)

	case "r":
		return m, m.loadTasks()
	}

	return m.updateActiveView(msg)
}

// updateActiveView forwards a message to the currently visible view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewProfile:
		m.profileForm, cmd = m.profileForm.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}
	return m, cmd
}

// View renders the full frame: header, active view, status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewList:
		content = m.taskList.View()
	case ViewTaskCreate, ViewTaskEdit:
		content = m.taskForm.View()
	case ViewProfile:
		content = m.profileForm.View()
	case ViewSettings:
		content = m.settingsView.View()
	case ViewHelp:
		content = m.helpView.View()
	}

	header := m.layout.RenderHeader("Study Planner", m.taskList.StatsLine())
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// statusLine picks the transient flash over the static key hints.
func (m Model) statusLine() string {
	if m.busy {
		return "Working..."
	}
	if m.flash != "" {
		if m.flashIsErr {
			return theme.ErrorStyle.Render(m.flash)
		}
		return theme.FlashStyle.Render(m.flash)
	}
	return "a add · e edit · d delete · space toggle · p profile · s settings · ? help · q quit"
}

func (m *Model) setFlash(s string) {
	m.flash = s
	m.flashIsErr = false
}

func (m *Model) setError(s string) {
	m.flash = s
	m.flashIsErr = true
}
