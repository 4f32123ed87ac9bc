package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

const appointmentColumns = `id, user_id, doctor_id, user_info, doctor_info, date, time,
	medical_report, status, created_at, updated_at`

type appointmentRow struct {
	ID            string                    `db:"id"`
	UserID        string                    `db:"user_id"`
	DoctorID      string                    `db:"doctor_id"`
	UserInfo      jsonb[domain.PatientInfo] `db:"user_info"`
	DoctorInfo    jsonb[domain.DoctorInfo]  `db:"doctor_info"`
	Date          string                    `db:"date"`
	Time          string                    `db:"time"`
	MedicalReport *string                   `db:"medical_report"`
	Status        string                    `db:"status"`
	CreatedAt     time.Time                 `db:"created_at"`
	UpdatedAt     time.Time                 `db:"updated_at"`
}

func (r appointmentRow) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:            r.ID,
		UserID:        r.UserID,
		DoctorID:      r.DoctorID,
		UserInfo:      r.UserInfo.V,
		DoctorInfo:    r.DoctorInfo.V,
		Date:          r.Date,
		Time:          r.Time,
		MedicalReport: r.MedicalReport,
		Status:        domain.AppointmentStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// AppointmentRepository handles appointment data access operations.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a new appointment.
func (r *AppointmentRepository) Create(ctx context.Context, a domain.Appointment) (*domain.Appointment, error) {
	var row appointmentRow
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO appointments (id, user_id, doctor_id, user_info, doctor_info, date, time, medical_report, status)
		 VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9)
		 RETURNING `+appointmentColumns,
		uuid.NewString(), a.UserID, a.DoctorID,
		jsonb[domain.PatientInfo]{V: a.UserInfo}, jsonb[domain.DoctorInfo]{V: a.DoctorInfo},
		a.Date, a.Time, a.MedicalReport, string(a.Status),
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return row.toDomain(), nil
}

// FindByID retrieves an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var row appointmentRow
	err := r.db.GetContext(ctx, &row, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// List returns every appointment.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	return r.selectAppointments(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY created_at`)
}

// ListByUser returns the appointments booked by a patient.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.selectAppointments(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY created_at`, userID)
}

// ListByDoctor returns the appointments booked with a doctor.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	return r.selectAppointments(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE doctor_id = $1 ORDER BY created_at`, doctorID)
}

func (r *AppointmentRepository) selectAppointments(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	var rows []appointmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select appointments: %w", err)
	}
	out := make([]domain.Appointment, len(rows))
	for i := range rows {
		out[i] = *rows[i].toDomain()
	}
	return out, nil
}

// UpdateStatus overwrites the appointment's status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	var row appointmentRow
	err := r.db.QueryRowxContext(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+appointmentColumns, id, string(status),
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update appointment status %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// DeleteByDoctor removes every appointment whose doctor reference is one of
// doctorIDs and returns how many were removed.
func (r *AppointmentRepository) DeleteByDoctor(ctx context.Context, doctorIDs ...string) (int64, error) {
	if len(doctorIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM appointments WHERE doctor_id IN (?)`, doctorIDs)
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("delete appointments: %w", err)
	}
	return res.RowsAffected()
}
