package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Raafiya76/doctor-appointment-booking/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "doctor-appointment-booking",
		Short:         "Doctor appointment booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
	return cfg, nil
}
