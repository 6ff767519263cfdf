package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"presence-stats-service/internal/config"
	"presence-stats-service/migrations"
)

func init() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", migrations.Up),
		migrateSubcommand("down", "Roll back the latest migration", migrations.Down),
		migrateSubcommand("status", "Show applied migrations", migrations.Status),
	)
	rootCmd.AddCommand(migrateCmd)
}

func migrateSubcommand(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return run(cmd.Context(), db)
		},
	}
}
