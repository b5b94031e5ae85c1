package repo

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an operation referenced a task id that is no
// longer in the collection. Non-fatal: the caller should refresh its view.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// IsNotFound reports whether err (or any error in its chain) is a
// NotFoundError.
func IsNotFound(err error) bool {
	var nerr *NotFoundError
	return errors.As(err, &nerr)
}

// StorageError indicates a durable-store read/write failure or a corrupt
// payload. The in-memory state is left unchanged so the caller can retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err (or any error in its chain) is a
// StorageError.
func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
