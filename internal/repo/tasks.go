// Package repo owns read-modify-write access to the persisted task
// collection. Every mutation reloads the collection, applies the change,
// drives the scheduler so record and reminder stay consistent, and writes
// the whole collection back in one replace.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/scheduler"
	"github.com/nhle/study-planner/internal/store"
)

// TaskRepository is the single writer of the task collection. Callers must
// not overlap two mutating calls; the UI serializes them behind a busy
// state.
type TaskRepository struct {
	store store.Store
	sched *scheduler.Adapter
	now   func() time.Time
}

// NewTaskRepository creates a repository over the given store and
// scheduler. now may be nil to use time.Now.
func NewTaskRepository(s store.Store, sched *scheduler.Adapter, now func() time.Time) *TaskRepository {
	if now == nil {
		now = time.Now
	}
	return &TaskRepository{store: s, sched: sched, now: now}
}

// Now reports the repository's current time. Callers use it to seed
// time-dependent defaults with the same clock validation will see.
func (r *TaskRepository) Now() time.Time {
	return r.now()
}

// List loads the persisted task collection. An absent key yields an empty
// collection (first run).
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	return r.load(ctx)
}

// Create validates the draft, assigns an id and creation time, schedules
// a best-effort reminder, prepends the task to the collection, and
// persists. Validation runs before any I/O.
func (r *TaskRepository) Create(ctx context.Context, draft model.Draft) (model.Task, error) {
	now := r.now()
	if err := model.Validate(draft, now, model.ValidateCreate); err != nil {
		return model.Task{}, err
	}

	tasks, err := r.load(ctx)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          uuid.New().String(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.ResolvedCategory(),
		Priority:    draft.Priority,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		CreatedAt:   now,
	}
	task.NotificationHandle = r.sched.Schedule(ctx, task, now)

	tasks = append([]model.Task{task}, tasks...)
	if err := r.persist(ctx, tasks); err != nil {
		r.sched.Cancel(task.NotificationHandle)
		return model.Task{}, err
	}

	return task, nil
}

// Update validates the draft in edit mode (an in-progress task stays
// editable, so no future-start check), applies it to the stored task, and
// persists. When the start time changed the old reminder is cancelled
// before a new one is scheduled, keeping at most one reminder live.
func (r *TaskRepository) Update(ctx context.Context, id string, draft model.Draft) (model.Task, error) {
	now := r.now()
	if err := model.Validate(draft, now, model.ValidateEdit); err != nil {
		return model.Task{}, err
	}

	tasks, err := r.load(ctx)
	if err != nil {
		return model.Task{}, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	task := tasks[i]
	startChanged := !task.StartTime.Equal(draft.StartTime)

	task.Title = draft.Title
	task.Description = draft.Description
	task.Category = draft.ResolvedCategory()
	task.Priority = draft.Priority
	task.StartTime = draft.StartTime
	task.EndTime = draft.EndTime

	var rescheduled *string
	if startChanged {
		r.sched.Cancel(task.NotificationHandle)
		if h := r.sched.Schedule(ctx, task, now); h != nil {
			// Reminders are best-effort: without permission the old
			// handle value is left in place and the task still saves.
			task.NotificationHandle = h
			rescheduled = h
		}
	}

	tasks[i] = task
	if err := r.persist(ctx, tasks); err != nil {
		r.sched.Cancel(rescheduled)
		return model.Task{}, err
	}

	return task, nil
}

// ToggleComplete flips the completed flag. The reminder handle is left
// untouched: a pending reminder for a task completed early may still fire.
func (r *TaskRepository) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return model.Task{}, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	tasks[i].Completed = !tasks[i].Completed
	if err := r.persist(ctx, tasks); err != nil {
		return model.Task{}, err
	}

	return tasks[i], nil
}

// Delete cancels the task's reminder, removes it from the collection, and
// persists.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	r.sched.Cancel(tasks[i].NotificationHandle)
	tasks = append(tasks[:i], tasks[i+1:]...)

	return r.persist(ctx, tasks)
}

// Reset cancels every live reminder handle, then wipes the durable store.
func (r *TaskRepository) Reset(ctx context.Context) error {
	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		r.sched.Cancel(t.NotificationHandle)
	}

	if err := r.store.Clear(ctx); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

// RestoreReminders re-arms reminders after a restart. Persisted handles
// reference timers that died with the previous process, so incomplete
// tasks whose start is still in the future get fresh handles and every
// other stale handle is dropped. The refreshed collection is persisted
// when anything changed.
func (r *TaskRepository) RestoreReminders(ctx context.Context) error {
	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	changed := false
	for i, t := range tasks {
		switch {
		case !t.Completed && t.StartTime.After(now):
			tasks[i].NotificationHandle = r.sched.Schedule(ctx, t, now)
			changed = true
		case t.NotificationHandle != nil:
			tasks[i].NotificationHandle = nil
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return r.persist(ctx, tasks)
}

// load reads and decodes the whole task collection.
func (r *TaskRepository) load(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyTasks)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return tasks, nil
}

// persist serializes and writes the whole collection in one replace, so a
// failed save leaves the prior persisted state untouched.
func (r *TaskRepository) persist(ctx context.Context, tasks []model.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := r.store.Set(ctx, store.KeyTasks, raw); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
