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

const doctorColumns = `id, user_id, prefix, full_name, email, phone_number, address,
	specialization, experience, fee_per_consultation, from_time, to_time, status,
	created_at, updated_at`

type doctorRow struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	Prefix             string    `db:"prefix"`
	FullName           string    `db:"full_name"`
	Email              string    `db:"email"`
	PhoneNumber        string    `db:"phone_number"`
	Address            string    `db:"address"`
	Specialization     string    `db:"specialization"`
	Experience         string    `db:"experience"`
	FeePerConsultation float64   `db:"fee_per_consultation"`
	FromTime           string    `db:"from_time"`
	ToTime             string    `db:"to_time"`
	Status             string    `db:"status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r doctorRow) toDomain() *domain.Doctor {
	return &domain.Doctor{
		ID:     r.ID,
		UserID: r.UserID,
		Status: domain.DoctorStatus(r.Status),
		DoctorProfile: domain.DoctorProfile{
			Prefix:             r.Prefix,
			FullName:           r.FullName,
			Email:              r.Email,
			PhoneNumber:        r.PhoneNumber,
			Address:            r.Address,
			Specialization:     r.Specialization,
			Experience:         r.Experience,
			FeePerConsultation: r.FeePerConsultation,
			FromTime:           r.FromTime,
			ToTime:             r.ToTime,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// DoctorRepository handles doctor data access operations.
type DoctorRepository struct {
	db *sqlx.DB
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(db *sqlx.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

type queryRower interface {
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
}

func insertDoctor(ctx context.Context, q queryRower, d domain.Doctor) (*domain.Doctor, error) {
	var row doctorRow
	err := q.QueryRowxContext(ctx,
		`INSERT INTO doctors (id, user_id, prefix, full_name, email, phone_number, address,
		                      specialization, experience, fee_per_consultation, from_time, to_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+doctorColumns,
		uuid.NewString(), d.UserID, d.Prefix, d.FullName, d.Email, d.PhoneNumber, d.Address,
		d.Specialization, d.Experience, d.FeePerConsultation, d.FromTime, d.ToTime, string(d.Status),
	).StructScan(&row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert doctor: %w", err)
	}
	return row.toDomain(), nil
}

// Create inserts a new doctor. A user owns at most one doctor record.
func (r *DoctorRepository) Create(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	return insertDoctor(ctx, r.db, doctor)
}

// InsertMany inserts doctors in one transaction.
func (r *DoctorRepository) InsertMany(ctx context.Context, doctors []domain.Doctor) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, d := range doctors {
		if _, err := insertDoctor(ctx, tx, d); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(doctors), nil
}

// FindByID retrieves a doctor by ID.
func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
}

// FindByUserID retrieves the doctor owned by userID.
func (r *DoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE user_id = $1`, userID)
}

func (r *DoctorRepository) getOne(ctx context.Context, query, arg string) (*domain.Doctor, error) {
	var row doctorRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find doctor %s: %w", arg, err)
	}
	return row.toDomain(), nil
}

// List returns every doctor.
func (r *DoctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	return r.selectDoctors(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY created_at`)
}

// ListByStatus returns the doctors in the given status.
func (r *DoctorRepository) ListByStatus(ctx context.Context, status domain.DoctorStatus) ([]domain.Doctor, error) {
	return r.selectDoctors(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *DoctorRepository) selectDoctors(ctx context.Context, query string, args ...any) ([]domain.Doctor, error) {
	var rows []doctorRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select doctors: %w", err)
	}
	out := make([]domain.Doctor, len(rows))
	for i := range rows {
		out[i] = *rows[i].toDomain()
	}
	return out, nil
}

// UpdateStatus sets the doctor's status.
func (r *DoctorRepository) UpdateStatus(ctx context.Context, id string, status domain.DoctorStatus) (*domain.Doctor, error) {
	var row doctorRow
	err := r.db.QueryRowxContext(ctx,
		`UPDATE doctors SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+doctorColumns, id, string(status),
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update doctor status %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// UpdateProfile replaces the doctor's profile fields.
func (r *DoctorRepository) UpdateProfile(ctx context.Context, id string, p domain.DoctorProfile) (*domain.Doctor, error) {
	var row doctorRow
	err := r.db.QueryRowxContext(ctx,
		`UPDATE doctors
		 SET prefix = $2, full_name = $3, email = $4, phone_number = $5, address = $6,
		     specialization = $7, experience = $8, fee_per_consultation = $9,
		     from_time = $10, to_time = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+doctorColumns,
		id, p.Prefix, p.FullName, p.Email, p.PhoneNumber, p.Address,
		p.Specialization, p.Experience, p.FeePerConsultation, p.FromTime, p.ToTime,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update doctor profile %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// DeleteByUserID removes the doctor owned by userID and returns it.
func (r *DoctorRepository) DeleteByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	var row doctorRow
	err := r.db.QueryRowxContext(ctx,
		`DELETE FROM doctors WHERE user_id = $1 RETURNING `+doctorColumns, userID,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete doctor for user %s: %w", userID, err)
	}
	return row.toDomain(), nil
}
