// Package seed loads sample data: a set of approved doctors with their owner
// accounts and, optionally, an admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// SampleDoctors are the approved doctors loaded by Doctors.
var SampleDoctors = []domain.DoctorProfile{
	{Prefix: "Dr.", FullName: "Ahmed Hassan", Email: "ahmed.hassan@example.com", PhoneNumber: "+201001234567", Address: "123 Medical Center, Cairo", Specialization: "Cardiology", Experience: "10 years", FeePerConsultation: 100, FromTime: "09:00", ToTime: "17:00"},
	{Prefix: "Dr.", FullName: "Fatima Ahmed", Email: "fatima.ahmed@example.com", PhoneNumber: "+201001234568", Address: "456 Health Plaza, Giza", Specialization: "Pediatrics", Experience: "8 years", FeePerConsultation: 80, FromTime: "10:00", ToTime: "18:00"},
	{Prefix: "Dr.", FullName: "Mohamed Ali", Email: "mohamed.ali@example.com", PhoneNumber: "+201001234569", Address: "789 Hospital Road, Alexandria", Specialization: "Dermatology", Experience: "12 years", FeePerConsultation: 90, FromTime: "08:00", ToTime: "16:00"},
	{Prefix: "Dr.", FullName: "Laila Mohsen", Email: "laila.mohsen@example.com", PhoneNumber: "+201001234570", Address: "321 Clinic Street, Cairo", Specialization: "Neurology", Experience: "15 years", FeePerConsultation: 120, FromTime: "09:00", ToTime: "17:00"},
	{Prefix: "Dr.", FullName: "Osama Ibrahim", Email: "osama.ibrahim@example.com", PhoneNumber: "+201001234571", Address: "654 Medical Complex, Giza", Specialization: "Orthopedics", Experience: "11 years", FeePerConsultation: 110, FromTime: "10:00", ToTime: "18:00"},
	{Prefix: "Dr.", FullName: "Noor Salem", Email: "noor.salem@example.com", PhoneNumber: "+201001234572", Address: "987 Health Center, Helwan", Specialization: "Gynecology", Experience: "9 years", FeePerConsultation: 95, FromTime: "09:00", ToTime: "17:00"},
}

// Seeder writes sample records through the regular stores.
type Seeder struct {
	users   service.UserStore
	doctors service.DoctorStore
	auth    *service.AuthService
}

// New creates a new Seeder.
func New(users service.UserStore, doctors service.DoctorStore, auth *service.AuthService) *Seeder {
	return &Seeder{users: users, doctors: doctors, auth: auth}
}

// Doctors creates an owner account and an approved doctor record for each
// sample profile. Profiles whose email already has an account are skipped,
// so running it twice is harmless. Returns the number of doctors inserted.
func (s *Seeder) Doctors(ctx context.Context, password string) (int, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	var pending []domain.Doctor
	for _, profile := range SampleDoctors {
		_, err := s.users.FindByEmail(ctx, profile.Email)
		if err == nil {
			slog.Debug("sample doctor exists, skipping", "email", profile.Email)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("find user %s: %w", profile.Email, err)
		}

		owner, err := s.users.Create(ctx, domain.User{
			Name:         profile.FullName,
			Email:        profile.Email,
			PhoneNumber:  profile.PhoneNumber,
			PasswordHash: hash,
			IsDoctor:     true,
		})
		if err != nil {
			return 0, fmt.Errorf("create owner %s: %w", profile.Email, err)
		}
		pending = append(pending, domain.Doctor{
			UserID:        owner.ID,
			Status:        domain.DoctorStatusApproved,
			DoctorProfile: profile,
		})
	}

	if len(pending) == 0 {
		return 0, nil
	}
	n, err := s.doctors.InsertMany(ctx, pending)
	if err != nil {
		return 0, fmt.Errorf("insert sample doctors: %w", err)
	}
	slog.Info("sample doctors added", "count", n)
	return n, nil
}

// Admin creates an admin account unless the email is already taken, in which
// case the existing user is returned unchanged.
func (s *Seeder) Admin(ctx context.Context, name, email, password string) (*domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil {
		if !existing.IsAdmin {
			slog.Warn("seed admin email belongs to a regular user", "email", email)
		}
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin %s: %w", email, err)
	}
	slog.Info("admin account created", "email", email)
	return admin, nil
}
