package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// AccountService exposes user records and account deletion.
type AccountService struct {
	users        UserStore
	doctors      DoctorStore
	appointments AppointmentStore
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore, doctors DoctorStore, appointments AppointmentStore) *AccountService {
	return &AccountService{users: users, doctors: doctors, appointments: appointments}
}

// List returns the listing projection of every user.
func (s *AccountService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.UserSummary, len(users))
	for i := range users {
		out[i] = users[i].Summary()
	}
	return out, nil
}

// Get returns a user by ID.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

// Delete removes the user, the doctor record it owns and the appointments
// booked with that doctor. Appointments the user booked as a patient are
// left in place.
func (s *AccountService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return fmt.Errorf("delete user %s: %w", userID, err)
	}

	doctorRefs := []string{userID}
	doctor, err := s.doctors.DeleteByUserID(ctx, userID)
	switch {
	case err == nil:
		doctorRefs = append(doctorRefs, doctor.ID)
	case errors.Is(err, domain.ErrNotFound):
	default:
		return fmt.Errorf("delete doctor for user %s: %w", userID, err)
	}

	n, err := s.appointments.DeleteByDoctor(ctx, doctorRefs...)
	if err != nil {
		return fmt.Errorf("delete appointments for doctor %s: %w", userID, err)
	}
	slog.Info("account deleted", "user_id", userID, "appointments_removed", n)
	return nil
}
