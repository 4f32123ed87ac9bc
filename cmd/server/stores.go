package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raafiya76/doctor-appointment-booking/internal/config"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/memory"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/mongodb"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/postgres"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

type stores struct {
	users        service.UserStore
	doctors      service.DoctorStore
	appointments service.AppointmentStore
	close        func(context.Context) error
}

// openStores connects the backend selected by STORE_DRIVER.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		slog.Info("mongodb connected", "database", cfg.MongoDatabase)
		return &stores{
			users:        mongodb.NewUserRepository(db),
			doctors:      mongodb.NewDoctorRepository(db),
			appointments: mongodb.NewAppointmentRepository(db),
			close:        client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("database connected")
		return &stores{
			users:        postgres.NewUserRepository(db),
			doctors:      postgres.NewDoctorRepository(db),
			appointments: postgres.NewAppointmentRepository(db),
			close:        func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		db := memory.New()
		return &stores{
			users:        memory.NewUserRepository(db),
			doctors:      memory.NewDoctorRepository(db),
			appointments: memory.NewAppointmentRepository(db),
			close:        func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
