package model

import "time"

// Category is the subject area a task belongs to.
type Category string

// Fixed category choices offered by the task form. CategoryOther is a
// sentinel: at save time it is replaced by the user-supplied custom label.
const (
	CategoryStudy    Category = "Study"
	CategoryProject  Category = "Project"
	CategoryExam     Category = "Exam"
	CategoryExercise Category = "Exercise"
	CategoryOther    Category = "Other"
)

// Categories lists the selectable categories in form order.
var Categories = []Category{
	CategoryStudy,
	CategoryProject,
	CategoryExam,
	CategoryExercise,
	CategoryOther,
}

// Priority is the display emphasis level of a task. It has no effect on
// scheduling.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the selectable priorities in form order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// PriorityWeight returns the ordering weight of a priority: High > Medium > Low.
// Unknown values sort below Low.
func PriorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task is a user-defined unit of work with a time window and an optional
// pending reminder.
type Task struct {
	// ID is the unique identifier, assigned at creation and immutable.
	// It joins the task to its reminder handle.
	ID string `json:"id"`

	// Title is the non-empty summary of the task.
	Title string `json:"title"`

	// Description is optional free-form detail text.
	Description string `json:"description,omitempty"`

	// Category is the resolved category label. When the user picks "Other"
	// this holds their custom label, never the sentinel itself.
	Category string `json:"category"`

	// Priority is the display emphasis (Low, Medium, High).
	Priority Priority `json:"priority"`

	// StartTime and EndTime bound the task's time window.
	// EndTime is strictly after StartTime.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Completed is toggled by the user, independent of the time window.
	Completed bool `json:"completed"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"created_at"`

	// NotificationHandle references the pending reminder, or is nil when
	// no reminder is live (permission denied, reminder already fired, ...).
	NotificationHandle *string `json:"notification_handle,omitempty"`
}

// Draft holds the editable fields of a task as entered in the form,
// before validation. Category and CustomCategory are kept separate so
// validation can check the custom label only when "Other" is selected.
type Draft struct {
	Title          string
	Description    string
	Category       Category
	CustomCategory string
	Priority       Priority
	StartTime      time.Time
	EndTime        time.Time
}

// DraftOf derives an editable draft from a persisted task. The canonical
// record is never mutated before the draft passes validation.
func DraftOf(t Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Category:    Category(t.Category),
		Priority:    t.Priority,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
	}
	if !isFixedCategory(Category(t.Category)) {
		d.Category = CategoryOther
		d.CustomCategory = t.Category
	}
	return d
}

// ResolvedCategory returns the category label that would be stored:
// the custom label when "Other" is selected, the selection otherwise.
func (d Draft) ResolvedCategory() string {
	if d.Category == CategoryOther {
		return trimmed(d.CustomCategory)
	}
	return string(d.Category)
}

func isFixedCategory(c Category) bool {
	for _, fixed := range Categories {
		if c == fixed && c != CategoryOther {
			return true
		}
	}
	return false
}
