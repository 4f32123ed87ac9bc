package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Raafiya76/doctor-appointment-booking/internal/config"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(*cobra.Command, []string) error {
			return runMigrate(true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		RunE: func(*cobra.Command, []string) error {
			return runMigrate(false)
		},
	})
	return cmd
}

func runMigrate(up bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrations only apply to STORE_DRIVER=postgres, got %q", cfg.StoreDriver)
	}
	if err := postgres.Migrate(cfg.DatabaseURL, up); err != nil {
		return err
	}
	slog.Info("migrations finished", "up", up)
	return nil
}
