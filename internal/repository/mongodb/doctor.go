package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

type doctorDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    string               `bson:"userId"`
	Status    domain.DoctorStatus  `bson:"status"`
	Profile   domain.DoctorProfile `bson:",inline"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func (d doctorDocument) toDomain() *domain.Doctor {
	return &domain.Doctor{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Status:        d.Status,
		DoctorProfile: d.Profile,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func newDoctorDocument(d domain.Doctor) doctorDocument {
	now := time.Now().UTC()
	return doctorDocument{
		ID:        primitive.NewObjectID(),
		UserID:    d.UserID,
		Status:    d.Status,
		Profile:   d.DoctorProfile,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DoctorRepository handles doctor data access operations.
type DoctorRepository struct {
	coll *mongo.Collection
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{coll: db.Collection(doctorsCollection)}
}

// Create inserts a new doctor. A user owns at most one doctor record.
func (r *DoctorRepository) Create(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	doc := newDoctorDocument(doctor)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert doctor: %w", err)
	}
	return doc.toDomain(), nil
}

// InsertMany inserts doctors and returns how many were stored.
func (r *DoctorRepository) InsertMany(ctx context.Context, doctors []domain.Doctor) (int, error) {
	if len(doctors) == 0 {
		return 0, nil
	}
	docs := make([]any, len(doctors))
	for i, d := range doctors {
		docs[i] = newDoctorDocument(d)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("insert doctors: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// FindByID retrieves a doctor by ID.
func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByUserID retrieves the doctor owned by userID.
func (r *DoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *DoctorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Doctor, error) {
	var doc doctorDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every doctor.
func (r *DoctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	return r.find(ctx, bson.M{})
}

// ListByStatus returns the doctors in the given status.
func (r *DoctorRepository) ListByStatus(ctx context.Context, status domain.DoctorStatus) ([]domain.Doctor, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *DoctorRepository) find(ctx context.Context, filter bson.M) ([]domain.Doctor, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find doctors: %w", err)
	}
	var docs []doctorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	out := make([]domain.Doctor, len(docs))
	for i := range docs {
		out[i] = *docs[i].toDomain()
	}
	return out, nil
}

// UpdateStatus sets the doctor's status.
func (r *DoctorRepository) UpdateStatus(ctx context.Context, id string, status domain.DoctorStatus) (*domain.Doctor, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
}

// UpdateProfile replaces the doctor's profile fields.
func (r *DoctorRepository) UpdateProfile(ctx context.Context, id string, p domain.DoctorProfile) (*domain.Doctor, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"prefix":             p.Prefix,
			"fullName":           p.FullName,
			"email":              p.Email,
			"phoneNumber":        p.PhoneNumber,
			"address":            p.Address,
			"specialization":     p.Specialization,
			"experience":         p.Experience,
			"feePerConsultation": p.FeePerConsultation,
			"fromTime":           p.FromTime,
			"toTime":             p.ToTime,
			"updatedAt":          time.Now().UTC(),
		},
	})
}

func (r *DoctorRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Doctor, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc doctorDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update doctor %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// DeleteByUserID removes the doctor owned by userID and returns it.
func (r *DoctorRepository) DeleteByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	var doc doctorDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"userId": userID}).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete doctor for user %s: %w", userID, err)
	}
	return doc.toDomain(), nil
}
