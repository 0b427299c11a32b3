// Package cmd contains all Cobra commands for propchat.
//
// Design decision: the root command launches the chat TUI directly.
// Model and tenant selection happen inside the TUI via slash commands,
// not via CLI flags. Running `propchat` with no arguments starts the
// interactive chat.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/store"
	"github.com/propchat/propchat/tui"
)

var rootCmd = &cobra.Command{
	Use:   "propchat",
	Short: "Chat with a real-estate database in plain English",
	Long: `propchat answers natural-language questions about real-estate
projects and units by generating SQL against a local database:
  • Chat TUI with model and tenant switching
  • Embedded SQLite storage (optional remote Postgres)
  • HTTP API via 'propchat serve'

Run 'propchat' to start the chat. Run 'propchat seed' first to create
and populate the database.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		applog.Info("tui session started")
		defer applog.Close()
		return tui.Start(cfg, st)
	},
}

// openStore opens the backend the config selects.
func openStore(ctx context.Context, cfg *config.Config) (store.Executor, error) {
	switch cfg.Database.Backend {
	case config.BackendPostgres:
		return store.OpenPostgres(ctx, cfg.Database)
	case config.BackendSQLite, "":
		return store.OpenSQLite(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
