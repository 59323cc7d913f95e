package main

import (
	"log/slog"

	"slope-monitor/internal/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply every pending schema migration to the configured PostgreSQL database and exit.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := db.Migrate(ctx, db.Config{
		ConnString:     cfg.DB.URL,
		MigrationsPath: cfg.DB.MigrationsPath,
	}); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Database is up to date")
	return nil
}
