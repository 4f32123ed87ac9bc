package memory

import (
	"context"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// DoctorRepository handles doctor data access operations.
type DoctorRepository struct {
	db *DB
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(db *DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// Create stores a new doctor. A user owns at most one doctor record.
func (r *DoctorRepository) Create(_ context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.insert(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// InsertMany stores several doctors and returns how many were inserted.
func (r *DoctorRepository) InsertMany(_ context.Context, doctors []domain.Doctor) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range doctors {
		if err := r.insert(&doctors[i]); err != nil {
			return i, err
		}
	}
	return len(doctors), nil
}

func (r *DoctorRepository) insert(doctor *domain.Doctor) error {
	for _, d := range r.db.doctors {
		if d.UserID == doctor.UserID {
			return domain.ErrConflict
		}
	}
	now := r.db.now()
	doctor.ID = newID()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	r.db.doctors[doctor.ID] = *doctor
	r.db.doctorOrder = append(r.db.doctorOrder, doctor.ID)
	return nil
}

// FindByID retrieves a doctor by ID.
func (r *DoctorRepository) FindByID(_ context.Context, id string) (*domain.Doctor, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	d, ok := r.db.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// FindByUserID retrieves the doctor owned by userID.
func (r *DoctorRepository) FindByUserID(_ context.Context, userID string) (*domain.Doctor, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, id := range r.db.doctorOrder {
		if d := r.db.doctors[id]; d.UserID == userID {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns every doctor.
func (r *DoctorRepository) List(_ context.Context) ([]domain.Doctor, error) {
	return r.filter(func(domain.Doctor) bool { return true }), nil
}

// ListByStatus returns the doctors in the given status.
func (r *DoctorRepository) ListByStatus(_ context.Context, status domain.DoctorStatus) ([]domain.Doctor, error) {
	return r.filter(func(d domain.Doctor) bool { return d.Status == status }), nil
}

func (r *DoctorRepository) filter(keep func(domain.Doctor) bool) []domain.Doctor {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]domain.Doctor, 0, len(r.db.doctorOrder))
	for _, id := range r.db.doctorOrder {
		if d := r.db.doctors[id]; keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// UpdateStatus sets the doctor's status.
func (r *DoctorRepository) UpdateStatus(_ context.Context, id string, status domain.DoctorStatus) (*domain.Doctor, error) {
	return r.update(id, func(d *domain.Doctor) { d.Status = status })
}

// UpdateProfile replaces the doctor's profile fields.
func (r *DoctorRepository) UpdateProfile(_ context.Context, id string, profile domain.DoctorProfile) (*domain.Doctor, error) {
	return r.update(id, func(d *domain.Doctor) { d.DoctorProfile = profile })
}

func (r *DoctorRepository) update(id string, fn func(*domain.Doctor)) (*domain.Doctor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(&d)
	d.UpdatedAt = r.db.now()
	r.db.doctors[id] = d
	return &d, nil
}

// DeleteByUserID removes the doctor owned by userID and returns it.
func (r *DoctorRepository) DeleteByUserID(_ context.Context, userID string) (*domain.Doctor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, id := range r.db.doctorOrder {
		if d := r.db.doctors[id]; d.UserID == userID {
			delete(r.db.doctors, id)
			r.db.doctorOrder = removeID(r.db.doctorOrder, id)
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}
