package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// AppointmentService implements booking and the appointment status lifecycle.
type AppointmentService struct {
	users        UserStore
	doctors      DoctorStore
	appointments AppointmentStore
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(users UserStore, doctors DoctorStore, appointments AppointmentStore) *AppointmentService {
	return &AppointmentService{users: users, doctors: doctors, appointments: appointments}
}

// BookingRequest is a patient's request for an appointment.
type BookingRequest struct {
	PatientID     string
	DoctorID      string
	Date          string
	Time          string
	MedicalReport *string
}

// Book stores a new pending appointment and notifies the user owning the
// doctor record. No overlap check is made against existing bookings.
func (s *AppointmentService) Book(ctx context.Context, req BookingRequest) (*domain.Appointment, error) {
	patient, err := s.users.FindByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find patient %s: %w", req.PatientID, err)
	}

	doctor, err := s.doctors.FindByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor not found")
		}
		return nil, fmt.Errorf("find doctor %s: %w", req.DoctorID, err)
	}

	appt, err := s.appointments.Create(ctx, domain.Appointment{
		UserID:   patient.ID,
		DoctorID: doctor.ID,
		UserInfo: domain.PatientInfo{
			Name:        patient.Name,
			Email:       patient.Email,
			PhoneNumber: patient.PhoneNumber,
		},
		DoctorInfo: domain.DoctorInfo{
			UserID:         doctor.UserID,
			Prefix:         doctor.Prefix,
			FullName:       doctor.FullName,
			PhoneNumber:    doctor.PhoneNumber,
			Specialization: doctor.Specialization,
		},
		Date:          req.Date,
		Time:          req.Time,
		MedicalReport: req.MedicalReport,
		Status:        domain.AppointmentStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// The appointment is already stored; a failed notification is reported
	// but not rolled back.
	err = s.users.PushUnseenNotification(ctx, doctor.UserID, domain.Notification{
		Type:        domain.NotificationNewAppointmentRequest,
		Message:     fmt.Sprintf("A new appointment request has been made by %s", patient.Name),
		Data:        map[string]any{"name": patient.Name},
		OnClickPath: "/doctor/appointments",
	})
	if err != nil {
		slog.Error("appointment stored without doctor notification",
			"appointment_id", appt.ID, "doctor_user_id", doctor.UserID, "error", err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor account not found")
		}
		return nil, fmt.Errorf("notify doctor %s: %w", doctor.UserID, err)
	}

	return appt, nil
}

// ListForUser returns every appointment booked by the patient.
func (s *AppointmentService) ListForUser(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.appointments.ListByUser(ctx, patientID)
}

// ListAll returns every appointment.
func (s *AppointmentService) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.appointments.List(ctx)
}

// ListForDoctorOwner returns the appointments of the doctor record owned by userID.
func (s *AppointmentService) ListForDoctorOwner(ctx context.Context, userID string) ([]domain.Appointment, error) {
	doctor, err := s.doctors.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Doctor not found")
		}
		return nil, fmt.Errorf("find doctor for user %s: %w", userID, err)
	}
	return s.appointments.ListByDoctor(ctx, doctor.ID)
}

// UpdateStatus overwrites the status of an appointment. The current status is
// not checked and the patient is not notified.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	appt, err := s.appointments.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "Appointment not found")
		}
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return appt, nil
}
