package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raafiya76/doctor-appointment-booking/internal/seed"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

func seedCmd() *cobra.Command {
	var (
		doctorPassword string
		adminName      string
		adminEmail     string
		adminPassword  string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample approved doctors and an optional admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			st, err := openStores(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open stores: %w", err)
			}
			defer st.close(context.Background())

			s := seed.New(st.users, st.doctors, service.NewAuthService(st.users, cfg.JWTSecret))
			if _, err := s.Doctors(ctx, doctorPassword); err != nil {
				return err
			}
			if adminEmail != "" {
				if adminPassword == "" {
					return fmt.Errorf("--admin-password is required with --admin-email")
				}
				if _, err := s.Admin(ctx, adminName, adminEmail, adminPassword); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&doctorPassword, "doctor-password", "password123", "password for the sample doctor accounts")
	cmd.Flags().StringVar(&adminName, "admin-name", "Admin", "name of the admin account")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "create an admin account with this email")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the admin account")
	return cmd
}
