package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

var (
	configPath string
	cfg        config.Config
	db         *storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "A local task list with search, filters and reminders",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrCreate(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		db, err = storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run(db, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFileName, "config file path")
	rootCmd.AddCommand(addCmd, listCmd, doneCmd, rmCmd, clearCmd)
}

func Execute() error {
	err := rootCmd.Execute()
	if db != nil {
		db.Close()
	}
	return err
}

// openStore loads the persisted collection into a Store whose persist
// failures go to stderr instead of a status line.
func openStore() (*task.Store, error) {
	tasks, err := db.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	sink := func(ev task.Event) {
		if ev.Kind == task.EventPersistFailed {
			fmt.Fprintf(os.Stderr, "warning: save failed (change kept in memory): %v\n", ev.Err)
		}
	}
	return task.NewStore(db, tasks, task.WithEventSink(sink)), nil
}
