package store_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/nhle/study-planner/internal/store"
	"github.com/nhle/study-planner/tests/testutil"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := s.Get(ctx, store.KeyTasks)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Error("expected ok=false for absent key")
		}
	})

	t.Run("set then get", func(t *testing.T) {
		want := []byte(`[{"id":"t1"}]`)
		if err := s.Set(ctx, store.KeyTasks, want); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, ok, err := s.Get(ctx, store.KeyTasks)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !ok {
			t.Fatal("expected ok=true after set")
		}
		if !bytes.Equal(got, want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := s.Set(ctx, store.KeyProfile, []byte(`{"username":"ann"}`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		want := []byte(`{"username":"ben"}`)
		if err := s.Set(ctx, store.KeyProfile, want); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, ok, err := s.Get(ctx, store.KeyProfile)
		if err != nil || !ok {
			t.Fatalf("get: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("clear removes everything", func(t *testing.T) {
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		for _, key := range []string{store.KeyTasks, store.KeyProfile} {
			if _, ok, err := s.Get(ctx, key); err != nil || ok {
				t.Errorf("key %s: expected absent after clear, ok=%v err=%v", key, ok, err)
			}
		}
	})
}
