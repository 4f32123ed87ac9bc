package seed

import (
	"context"
	"testing"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/memory"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

func newSeeder() (*Seeder, *memory.UserRepository, *memory.DoctorRepository) {
	db := memory.New()
	users := memory.NewUserRepository(db)
	doctors := memory.NewDoctorRepository(db)
	return New(users, doctors, service.NewAuthService(users, "secret")), users, doctors
}

func TestDoctorsSeedsApprovedDoctorsOnce(t *testing.T) {
	ctx := context.Background()
	s, users, doctors := newSeeder()

	n, err := s.Doctors(ctx, "password123")
	if err != nil {
		t.Fatalf("Doctors: %v", err)
	}
	if n != len(SampleDoctors) {
		t.Fatalf("inserted %d, want %d", n, len(SampleDoctors))
	}

	approved, err := doctors.ListByStatus(ctx, domain.DoctorStatusApproved)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(approved) != len(SampleDoctors) {
		t.Fatalf("approved = %d, want %d", len(approved), len(SampleDoctors))
	}
	for _, d := range approved {
		owner, err := users.FindByID(ctx, d.UserID)
		if err != nil {
			t.Fatalf("owner of %s: %v", d.FullName, err)
		}
		if !owner.IsDoctor {
			t.Errorf("owner of %s should be a doctor", d.FullName)
		}
	}

	n, err = s.Doctors(ctx, "password123")
	if err != nil {
		t.Fatalf("second Doctors: %v", err)
	}
	if n != 0 {
		t.Errorf("second run inserted %d, want 0", n)
	}
}

func TestAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, users, _ := newSeeder()

	first, err := s.Admin(ctx, "Admin", "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if !first.IsAdmin {
		t.Error("seeded account should be an admin")
	}

	second, err := s.Admin(ctx, "Admin", "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("second Admin: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new account")
	}

	admins, err := users.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("admins = %d, want 1", len(admins))
	}
}
