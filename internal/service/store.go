package service

import (
	"context"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// UserStore defines the user data access interface consumed by the services.
type UserStore interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
	PushUnseenNotification(ctx context.Context, userID string, n domain.Notification) error
	SetDoctorFlag(ctx context.Context, userID string, isDoctor bool) error
	// MarkNotificationsSeen replaces the seen inbox with the unseen one and
	// empties the unseen inbox.
	MarkNotificationsSeen(ctx context.Context, userID string) (*domain.User, error)
	ClearNotifications(ctx context.Context, userID string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// DoctorStore defines the doctor data access interface consumed by the services.
type DoctorStore interface {
	Create(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error)
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	ListByStatus(ctx context.Context, status domain.DoctorStatus) ([]domain.Doctor, error)
	UpdateStatus(ctx context.Context, id string, status domain.DoctorStatus) (*domain.Doctor, error)
	UpdateProfile(ctx context.Context, id string, profile domain.DoctorProfile) (*domain.Doctor, error)
	// DeleteByUserID removes the doctor owned by userID and returns it.
	DeleteByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	InsertMany(ctx context.Context, doctors []domain.Doctor) (int, error)
}

// AppointmentStore defines the appointment data access interface consumed by the services.
type AppointmentStore interface {
	Create(ctx context.Context, appt domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	DeleteByDoctor(ctx context.Context, doctorIDs ...string) (int64, error)
}
