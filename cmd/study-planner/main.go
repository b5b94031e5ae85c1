package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/study-planner/internal/app"
	"github.com/nhle/study-planner/internal/avatar"
	"github.com/nhle/study-planner/internal/credential"
	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/notify"
	"github.com/nhle/study-planner/internal/repo"
	"github.com/nhle/study-planner/internal/scheduler"
	"github.com/nhle/study-planner/internal/store"
)

func main() {
	// Credential management runs before the TUI starts.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "set-imgbb-key":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: study-planner set-imgbb-key <api-key>")
				os.Exit(2)
			}
			if err := credential.Set(avatar.CredentialKey, os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "failed to store api key: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("imgbb api key stored")
			return
		case "clear-imgbb-key":
			if err := credential.Delete(avatar.CredentialKey); err != nil {
				fmt.Fprintf(os.Stderr, "failed to remove api key: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("imgbb api key removed")
			return
		}
	}

	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	logger := log.New(os.Stderr, "study-planner: ", log.LstdFlags)

	reminders := notify.NewService(func() bool {
		return cfg.Notifications.Enabled
	}, st)
	sched := scheduler.New(reminders, logger)
	tasks := repo.NewTaskRepository(st, sched, nil)
	profiles := repo.NewProfileRepository(st)

	root := app.New(cfg, cfgPath, tasks, profiles, reminders)
	p := tea.NewProgram(root, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running application: %v\n", err)
		os.Exit(1)
	}
}
