package model

import (
	"path/filepath"
	"testing"
)

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !cfg.Notifications.Enabled {
			t.Error("expected notifications enabled by default")
		}
		if cfg.Display.Theme != "default" {
			t.Errorf("expected default theme, got %q", cfg.Display.Theme)
		}
		if cfg.DBPath == "" {
			t.Error("expected a default db path")
		}
	})

	t.Run("save then load", func(t *testing.T) {
		cfg := &AppConfig{
			DBPath: filepath.Join(t.TempDir(), "planner.db"),
			Notifications: NotificationConfig{
				Enabled: false,
			},
			Display: DisplayConfig{
				Theme: "dark",
			},
		}
		if err := SaveConfig(path, cfg); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Notifications.Enabled {
			t.Error("expected notifications disabled")
		}
		if got.Display.Theme != "dark" {
			t.Errorf("expected dark theme, got %q", got.Display.Theme)
		}
		if got.DBPath != cfg.DBPath {
			t.Errorf("expected db path %q, got %q", cfg.DBPath, got.DBPath)
		}
	})
}
