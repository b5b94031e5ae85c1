package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidateMode distinguishes creation from edits. Creation additionally
// requires the start time to be in the future; an in-progress task must
// remain editable, so edits skip that check.
type ValidateMode int

const (
	ValidateCreate ValidateMode = iota
	ValidateEdit
)

// ValidationError describes a user-correctable input problem. It is
// surfaced to the user and aborts the operation before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err (or any error in its chain) is a
// ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Validate checks a draft against the task invariants: non-empty title,
// non-empty resolved category, and a strictly positive time window. In
// ValidateCreate mode the start time must also lie after now.
func Validate(d Draft, now time.Time, mode ValidateMode) error {
	if trimmed(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if d.Category == CategoryOther && trimmed(d.CustomCategory) == "" {
		return &ValidationError{Field: "category", Reason: "custom category must not be empty"}
	}
	if d.ResolvedCategory() == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if !d.EndTime.After(d.StartTime) {
		return &ValidationError{Field: "time window", Reason: "end time must be after start time"}
	}
	if mode == ValidateCreate && !d.StartTime.After(now) {
		return &ValidationError{Field: "start time", Reason: "must be in the future"}
	}
	return nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
