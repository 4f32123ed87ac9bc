package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/mongodb"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/storetest"
)

func TestStores(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	storetest.Run(t, func(t *testing.T) storetest.Stores {
		db := client.Database(fmt.Sprintf("appointments_test_%s", uuid.NewString()[:8]))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })
		if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
			t.Fatalf("indexes: %v", err)
		}
		return storetest.Stores{
			Users:        mongodb.NewUserRepository(db),
			Doctors:      mongodb.NewDoctorRepository(db),
			Appointments: mongodb.NewAppointmentRepository(db),
		}
	})
}
