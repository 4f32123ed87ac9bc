package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raafiya76/doctor-appointment-booking/internal/authz"
	"github.com/Raafiya76/doctor-appointment-booking/internal/config"
	"github.com/Raafiya76/doctor-appointment-booking/internal/handler"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/postgres"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if autoMigrate && cfg.StoreDriver == config.DriverPostgres {
				if err := postgres.Migrate(cfg.DatabaseURL, true); err != nil {
					return err
				}
				slog.Info("migrations applied")
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply database migrations before serving (postgres only)")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := st.close(closeCtx); err != nil {
			slog.Error("close stores", "error", err)
		}
	}()

	authSvc := service.NewAuthService(st.users, cfg.JWTSecret)
	svc := handler.Services{
		Auth:          authSvc,
		Accounts:      service.NewAccountService(st.users, st.doctors, st.appointments),
		Appointments:  service.NewAppointmentService(st.users, st.doctors, st.appointments),
		Doctors:       service.NewDoctorService(st.users, st.doctors),
		Notifications: service.NewNotificationService(st.users),
	}

	e := handler.NewRouter(ctx, svc, authz.NewDefaultGate(), handler.RouterConfig{
		FrontendURL:   cfg.FrontendURL,
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
