package store

import "context"

// Well-known storage keys. The task repository is the sole writer of
// KeyTasks; the reminder service owns KeyReminderLog.
const (
	KeyTasks       = "tasks:list"
	KeyProfile     = "profile"
	KeyReminderLog = "reminders:log"
)

// Store is the durable key-value persistence contract. Each record is a
// single serialized blob replaced atomically on every write.
type Store interface {
	// Get returns the blob stored under key. ok is false when the key
	// has never been written (first run).
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Clear wipes every record. Callers are responsible for cancelling
	// any live reminder handles before invoking it.
	Clear(ctx context.Context) error
}
