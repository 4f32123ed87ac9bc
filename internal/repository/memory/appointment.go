package memory

import (
	"context"
	"slices"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// AppointmentRepository handles appointment data access operations.
type AppointmentRepository struct {
	db *DB
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create stores a new appointment.
func (r *AppointmentRepository) Create(_ context.Context, appt domain.Appointment) (*domain.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	appt.ID = newID()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	r.db.appointments[appt.ID] = cloneAppointment(appt)
	r.db.appointmentOrder = append(r.db.appointmentOrder, appt.ID)

	out := cloneAppointment(appt)
	return &out, nil
}

// FindByID retrieves an appointment by ID.
func (r *AppointmentRepository) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneAppointment(a)
	return &out, nil
}

// List returns every appointment.
func (r *AppointmentRepository) List(_ context.Context) ([]domain.Appointment, error) {
	return r.filter(func(domain.Appointment) bool { return true }), nil
}

// ListByUser returns the appointments booked by a patient.
func (r *AppointmentRepository) ListByUser(_ context.Context, userID string) ([]domain.Appointment, error) {
	return r.filter(func(a domain.Appointment) bool { return a.UserID == userID }), nil
}

// ListByDoctor returns the appointments booked with a doctor.
func (r *AppointmentRepository) ListByDoctor(_ context.Context, doctorID string) ([]domain.Appointment, error) {
	return r.filter(func(a domain.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *AppointmentRepository) filter(keep func(domain.Appointment) bool) []domain.Appointment {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]domain.Appointment, 0, len(r.db.appointmentOrder))
	for _, id := range r.db.appointmentOrder {
		if a := r.db.appointments[id]; keep(a) {
			out = append(out, cloneAppointment(a))
		}
	}
	return out
}

// UpdateStatus overwrites the appointment's status.
func (r *AppointmentRepository) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a = a.WithStatus(status)
	a.UpdatedAt = r.db.now()
	r.db.appointments[id] = a

	out := cloneAppointment(a)
	return &out, nil
}

// DeleteByDoctor removes every appointment whose doctor reference is one of
// doctorIDs and returns how many were removed.
func (r *AppointmentRepository) DeleteByDoctor(_ context.Context, doctorIDs ...string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for id, a := range r.db.appointments {
		if slices.Contains(doctorIDs, a.DoctorID) {
			delete(r.db.appointments, id)
			r.db.appointmentOrder = removeID(r.db.appointmentOrder, id)
			n++
		}
	}
	return n, nil
}
