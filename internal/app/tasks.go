package app

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/avatar"
	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/repo"
	"github.com/nhle/study-planner/internal/scheduler"
)

const opTimeout = 10 * time.Second

type tasksLoadedMsg struct {
	tasks []model.Task
	now   time.Time
	err   error
}

type taskSavedResultMsg struct {
	err error
}

type taskDeletedResultMsg struct {
	err error
}

type profileLoadedMsg struct {
	profile *model.Profile
	err     error
}

type profileSavedResultMsg struct {
	err error
}

type configSavedResultMsg struct {
	err error
}

type resetDoneMsg struct {
	err error
}

func (m Model) loadTasks() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		list, err := tasks.List(ctx)
		return tasksLoadedMsg{tasks: list, now: tasks.Now(), err: err}
	}
}

// restoreAndLoad re-arms reminders from the previous run before the
// first list render so stale handles never reach the screen.
func (m Model) restoreAndLoad() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := tasks.RestoreReminders(ctx); err != nil {
			return tasksLoadedMsg{err: err}
		}
		list, err := tasks.List(ctx)
		return tasksLoadedMsg{tasks: list, now: tasks.Now(), err: err}
	}
}

func (m Model) createTask(draft model.Draft) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := tasks.Create(ctx, draft)
		return taskSavedResultMsg{err: err}
	}
}

func (m Model) updateTask(id string, draft model.Draft) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := tasks.Update(ctx, id, draft)
		return taskSavedResultMsg{err: err}
	}
}

func (m Model) toggleTask(id string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := tasks.ToggleComplete(ctx, id)
		return taskSavedResultMsg{err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := tasks.Delete(ctx, id)
		return taskDeletedResultMsg{err: err}
	}
}

func (m Model) loadProfile() tea.Cmd {
	profiles := m.profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		p, err := profiles.Load(ctx)
		return profileLoadedMsg{profile: p, err: err}
	}
}

// saveProfile uploads a new avatar when a file path was given, then
// persists the profile. A failed upload does not block the save; the
// previous avatar URL is kept.
func (m Model) saveProfile(profile model.Profile, avatarPath string) tea.Cmd {
	profiles := m.profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if avatarPath != "" {
			if url, err := uploadAvatar(ctx, avatarPath); err == nil {
				profile.AvatarURL = url
			}
		}

		err := profiles.Save(ctx, profile)
		return profileSavedResultMsg{err: err}
	}
}

func uploadAvatar(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	up, err := avatar.NewFromKeyring()
	if err != nil {
		return "", err
	}
	return up.Upload(ctx, base64.StdEncoding.EncodeToString(data))
}

func (m Model) saveConfig() tea.Cmd {
	cfg := *m.cfg
	path := m.cfgPath
	return func() tea.Msg {
		err := model.SaveConfig(path, &cfg)
		return configSavedResultMsg{err: err}
	}
}

func (m Model) resetAll() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := tasks.Reset(ctx)
		return resetDoneMsg{err: err}
	}
}

// friendlyError maps known error kinds to short status line messages.
func friendlyError(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Field + ": " + verr.Reason
	}
	if repo.IsNotFound(err) {
		return "Task no longer exists"
	}
	if scheduler.IsNotifierError(err) {
		return "Reminder could not be scheduled"
	}
	if repo.IsStorageError(err) {
		return "Storage error: " + err.Error()
	}
	return err.Error()
}
