package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"presence-stats-service/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "presence-stats",
	Short: "Network presence recorder and statistics API",
	Long:  "Records which users are present on the network and serves ranked presence time per day, week, month, year and study period.",
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config TOML path")
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.DSN == "" {
		return nil, xerrors.New("POSTGRES_DSN is not set")
	}
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, xerrors.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
