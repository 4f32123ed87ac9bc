package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// DoctorService handles doctor applications and their moderation.
type DoctorService struct {
	users   UserStore
	doctors DoctorStore
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(users UserStore, doctors DoctorStore) *DoctorService {
	return &DoctorService{users: users, doctors: doctors}
}

// Apply stores a pending doctor application for userID and notifies the admins.
func (s *DoctorService) Apply(ctx context.Context, userID string, profile domain.DoctorProfile) (*domain.Doctor, error) {
	if _, err := s.doctors.FindByUserID(ctx, userID); err == nil {
		return nil, domain.Errorf(domain.ErrConflict, "Doctor application already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find doctor for user %s: %w", userID, err)
	}

	doctor, err := s.doctors.Create(ctx, domain.Doctor{
		UserID:        userID,
		Status:        domain.DoctorStatusPending,
		DoctorProfile: profile,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Errorf(domain.ErrConflict, "Doctor application already exists")
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	for _, admin := range admins {
		err := s.users.PushUnseenNotification(ctx, admin.ID, domain.Notification{
			Type:    domain.NotificationNewDoctorRequest,
			Message: fmt.Sprintf("%s has applied for a doctor account", profile.FullName),
			Data: map[string]any{
				"doctorId": doctor.ID,
				"name":     profile.FullName,
			},
			OnClickPath: "/admin/doctors",
		})
		if err != nil {
			return nil, fmt.Errorf("notify admin %s: %w", admin.ID, err)
		}
	}

	return doctor, nil
}

// ChangeStatus moves a doctor to approved or blocked, notifies ownerUserID
// and sets its isDoctor flag, then returns every doctor. ownerUserID is
// trusted as given; it is not checked against the doctor record.
func (s *DoctorService) ChangeStatus(ctx context.Context, doctorID string, status domain.DoctorStatus, ownerUserID string) ([]domain.Doctor, error) {
	if _, err := s.doctors.UpdateStatus(ctx, doctorID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor not found")
		}
		return nil, fmt.Errorf("update doctor %s: %w", doctorID, err)
	}

	owner, err := s.users.FindByID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find owner %s: %w", ownerUserID, err)
	}

	err = s.users.PushUnseenNotification(ctx, owner.ID, domain.Notification{
		Type:    domain.NotificationDoctorRequestChanged,
		Message: fmt.Sprintf("Your doctor request has been %s", status),
		Data: map[string]any{
			"name":     owner.Name,
			"doctorId": owner.ID,
		},
		OnClickPath: "/notifications",
	})
	if err != nil {
		return nil, fmt.Errorf("notify owner %s: %w", owner.ID, err)
	}

	if err := s.users.SetDoctorFlag(ctx, owner.ID, status == domain.DoctorStatusApproved); err != nil {
		slog.Error("doctor status changed without updating user flag",
			"doctor_id", doctorID, "user_id", owner.ID, "error", err)
		return nil, fmt.Errorf("set doctor flag for %s: %w", owner.ID, err)
	}

	return s.doctors.List(ctx)
}

// List returns every doctor regardless of status.
func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.doctors.List(ctx)
}

// ListApproved returns the doctors patients may book.
func (s *DoctorService) ListApproved(ctx context.Context) ([]domain.Doctor, error) {
	return s.doctors.ListByStatus(ctx, domain.DoctorStatusApproved)
}

// Get returns a doctor by ID.
func (s *DoctorService) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor not found")
		}
		return nil, fmt.Errorf("find doctor %s: %w", id, err)
	}
	return doctor, nil
}

// GetByUser returns the doctor record owned by userID.
func (s *DoctorService) GetByUser(ctx context.Context, userID string) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor not found")
		}
		return nil, fmt.Errorf("find doctor for user %s: %w", userID, err)
	}
	return doctor, nil
}

// UpdateProfile replaces the profile of the doctor owned by userID. The
// status is left untouched.
func (s *DoctorService) UpdateProfile(ctx context.Context, userID string, profile domain.DoctorProfile) (*domain.Doctor, error) {
	doctor, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.doctors.UpdateProfile(ctx, doctor.ID, profile)
	if err != nil {
		return nil, fmt.Errorf("update doctor %s: %w", doctor.ID, err)
	}
	return updated, nil
}
