package memory

import (
	"context"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// UserRepository handles user data access operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. Emails are unique.
func (r *UserRepository) Create(_ context.Context, user domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}

	now := r.db.now()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SeenNotifications == nil {
		user.SeenNotifications = []domain.Notification{}
	}
	if user.UnseenNotifications == nil {
		user.UnseenNotifications = []domain.Notification{}
	}
	r.db.users[user.ID] = cloneUser(user)
	r.db.userOrder = append(r.db.userOrder, user.ID)

	out := cloneUser(user)
	return &out, nil
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

// FindByEmail retrieves a user by their email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns every user.
func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	return r.filter(func(domain.User) bool { return true }), nil
}

// ListAdmins returns every admin user.
func (r *UserRepository) ListAdmins(_ context.Context) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool { return u.IsAdmin }), nil
}

func (r *UserRepository) filter(keep func(domain.User) bool) []domain.User {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]domain.User, 0, len(r.db.userOrder))
	for _, id := range r.db.userOrder {
		if u := r.db.users[id]; keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}

// PushUnseenNotification appends n to the user's unseen inbox.
func (r *UserRepository) PushUnseenNotification(_ context.Context, userID string, n domain.Notification) error {
	_, err := r.update(userID, func(u *domain.User) {
		u.UnseenNotifications = append(u.UnseenNotifications, cloneNotifications([]domain.Notification{n})...)
	})
	return err
}

// SetDoctorFlag sets the user's isDoctor flag.
func (r *UserRepository) SetDoctorFlag(_ context.Context, userID string, isDoctor bool) error {
	_, err := r.update(userID, func(u *domain.User) {
		u.IsDoctor = isDoctor
	})
	return err
}

// MarkNotificationsSeen overwrites the seen inbox with the unseen one and
// empties the unseen inbox.
func (r *UserRepository) MarkNotificationsSeen(_ context.Context, userID string) (*domain.User, error) {
	return r.update(userID, func(u *domain.User) {
		u.SeenNotifications = u.UnseenNotifications
		u.UnseenNotifications = []domain.Notification{}
	})
}

// ClearNotifications empties both inboxes.
func (r *UserRepository) ClearNotifications(_ context.Context, userID string) (*domain.User, error) {
	return r.update(userID, func(u *domain.User) {
		u.SeenNotifications = []domain.Notification{}
		u.UnseenNotifications = []domain.Notification{}
	})
}

// Delete removes a user.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.users, id)
	r.db.userOrder = removeID(r.db.userOrder, id)
	return nil
}

func (r *UserRepository) update(id string, fn func(*domain.User)) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = r.db.now()
	r.db.users[id] = u

	out := cloneUser(u)
	return &out, nil
}
