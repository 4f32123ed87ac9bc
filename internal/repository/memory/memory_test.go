package memory_test

import (
	"testing"

	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/memory"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/storetest"
)

func TestStores(t *testing.T) {
	storetest.Run(t, func(*testing.T) storetest.Stores {
		db := memory.New()
		return storetest.Stores{
			Users:        memory.NewUserRepository(db),
			Doctors:      memory.NewDoctorRepository(db),
			Appointments: memory.NewAppointmentRepository(db),
		}
	})
}
