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

const userColumns = `id, name, email, phone_number, password_hash, is_admin, is_doctor,
	seen_notifications, unseen_notifications, created_at, updated_at`

type userRow struct {
	ID                  string                       `db:"id"`
	Name                string                       `db:"name"`
	Email               string                       `db:"email"`
	PhoneNumber         string                       `db:"phone_number"`
	PasswordHash        string                       `db:"password_hash"`
	IsAdmin             bool                         `db:"is_admin"`
	IsDoctor            bool                         `db:"is_doctor"`
	SeenNotifications   jsonb[[]domain.Notification] `db:"seen_notifications"`
	UnseenNotifications jsonb[[]domain.Notification] `db:"unseen_notifications"`
	CreatedAt           time.Time                    `db:"created_at"`
	UpdatedAt           time.Time                    `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:                  r.ID,
		Name:                r.Name,
		Email:               r.Email,
		PhoneNumber:         r.PhoneNumber,
		PasswordHash:        r.PasswordHash,
		IsAdmin:             r.IsAdmin,
		IsDoctor:            r.IsDoctor,
		SeenNotifications:   r.SeenNotifications.V,
		UnseenNotifications: r.UnseenNotifications.V,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if u.SeenNotifications == nil {
		u.SeenNotifications = []domain.Notification{}
	}
	if u.UnseenNotifications == nil {
		u.UnseenNotifications = []domain.Notification{}
	}
	return u
}

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email yields domain.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	var row userRow
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, name, email, phone_number, password_hash, is_admin, is_doctor)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		uuid.NewString(), user.Name, user.Email, user.PhoneNumber, user.PasswordHash, user.IsAdmin, user.IsDoctor,
	).StructScan(&row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toDomain(), nil
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// FindByEmail retrieves a user by their email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return row.toDomain(), nil
}

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.selectUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
}

// ListAdmins returns every admin user.
func (r *UserRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return r.selectUsers(ctx, `SELECT `+userColumns+` FROM users WHERE is_admin ORDER BY created_at`)
}

func (r *UserRepository) selectUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	out := make([]domain.User, len(rows))
	for i := range rows {
		out[i] = *rows[i].toDomain()
	}
	return out, nil
}

// PushUnseenNotification appends n to the user's unseen inbox in a single statement.
func (r *UserRepository) PushUnseenNotification(ctx context.Context, userID string, n domain.Notification) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET unseen_notifications = unseen_notifications || jsonb_build_array($2::jsonb),
		     updated_at = NOW()
		 WHERE id = $1`, userID, jsonb[domain.Notification]{V: n})
	if err != nil {
		return fmt.Errorf("push notification for user %s: %w", userID, err)
	}
	return expectOne(res)
}

// SetDoctorFlag sets the user's is_doctor flag.
func (r *UserRepository) SetDoctorFlag(ctx context.Context, userID string, isDoctor bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_doctor = $2, updated_at = NOW() WHERE id = $1`, userID, isDoctor)
	if err != nil {
		return fmt.Errorf("set doctor flag for user %s: %w", userID, err)
	}
	return expectOne(res)
}

// MarkNotificationsSeen overwrites the seen inbox with the unseen one and
// empties the unseen inbox. The right-hand sides read the pre-update row.
func (r *UserRepository) MarkNotificationsSeen(ctx context.Context, userID string) (*domain.User, error) {
	return r.updateReturning(ctx,
		`UPDATE users
		 SET seen_notifications = unseen_notifications,
		     unseen_notifications = '[]'::jsonb,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns, userID)
}

// ClearNotifications empties both inboxes.
func (r *UserRepository) ClearNotifications(ctx context.Context, userID string) (*domain.User, error) {
	return r.updateReturning(ctx,
		`UPDATE users
		 SET seen_notifications = '[]'::jsonb,
		     unseen_notifications = '[]'::jsonb,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns, userID)
}

func (r *UserRepository) updateReturning(ctx context.Context, query, userID string) (*domain.User, error) {
	var row userRow
	if err := r.db.QueryRowxContext(ctx, query, userID).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}
	return row.toDomain(), nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
