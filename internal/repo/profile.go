package repo

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/store"
)

// ProfileRepository persists the single user profile under its own
// storage key, independent of the task collection.
type ProfileRepository struct {
	store store.Store
}

// NewProfileRepository creates a profile repository over the given store.
func NewProfileRepository(s store.Store) *ProfileRepository {
	return &ProfileRepository{store: s}
}

// Load returns the stored profile, or nil when none has been saved yet.
func (r *ProfileRepository) Load(ctx context.Context) (*model.Profile, error) {
	raw, ok, err := r.store.Get(ctx, store.KeyProfile)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return &p, nil
}

// Save validates and persists the profile, replacing any previous one.
func (r *ProfileRepository) Save(ctx context.Context, p model.Profile) error {
	if strings.TrimSpace(p.Username) == "" {
		return &model.ValidationError{Field: "username", Reason: "must not be empty"}
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := r.store.Set(ctx, store.KeyProfile, raw); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}
