package main

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/database"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// migrateCmd groups the schema migration commands
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply, roll back or inspect the embedded goose migrations.

Available subcommands:
  up     - Apply all pending migrations
  down   - Roll back the most recent migration
  status - Show the state of every migration`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  withDB("migrations applied", database.MigrateUp),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE:  withDB("migration rolled back", database.MigrateDown),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  withDB("", database.MigrationStatus),
}

// withDB opens the database for the duration of one migration command.
func withDB(done string, run func(context.Context, *sqlx.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := database.NewPostgresDB(cmd.Context(), &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		if err := run(cmd.Context(), db); err != nil {
			return err
		}
		if done != "" {
			log.Info(done)
		}
		return nil
	}
}
