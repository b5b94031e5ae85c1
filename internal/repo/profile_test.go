package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/repo"
	"github.com/nhle/study-planner/tests/testutil"
)

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save returns nil", func(t *testing.T) {
		r := repo.NewProfileRepository(testutil.NewTestStore(t))
		p, err := r.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if p != nil {
			t.Errorf("expected nil profile, got %+v", p)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		r := repo.NewProfileRepository(testutil.NewTestStore(t))
		dob := time.Date(2001, 6, 15, 0, 0, 0, 0, time.UTC)

		want := model.Profile{
			Username:    "ann",
			Age:         "24",
			Gender:      "female",
			Bio:         "CS student",
			DateOfBirth: &dob,
			AvatarURL:   "https://i.ibb.co/abc/avatar.png",
		}
		if err := r.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := r.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got == nil {
			t.Fatal("expected a profile")
		}
		if got.Username != want.Username || got.Bio != want.Bio || got.AvatarURL != want.AvatarURL {
			t.Errorf("expected %+v, got %+v", want, *got)
		}
		if got.DateOfBirth == nil || !got.DateOfBirth.Equal(dob) {
			t.Errorf("expected date of birth %v, got %v", dob, got.DateOfBirth)
		}
	})

	t.Run("save replaces previous profile", func(t *testing.T) {
		r := repo.NewProfileRepository(testutil.NewTestStore(t))
		r.Save(ctx, model.Profile{Username: "ann"})
		r.Save(ctx, model.Profile{Username: "ben"})

		got, _ := r.Load(ctx)
		if got.Username != "ben" {
			t.Errorf("expected ben, got %q", got.Username)
		}
	})

	t.Run("empty username rejected", func(t *testing.T) {
		r := repo.NewProfileRepository(testutil.NewTestStore(t))
		err := r.Save(ctx, model.Profile{Username: "   "})
		if !model.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
