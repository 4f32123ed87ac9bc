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

type appointmentDocument struct {
	ID            primitive.ObjectID       `bson:"_id,omitempty"`
	UserID        string                   `bson:"userId"`
	DoctorID      string                   `bson:"doctorId"`
	UserInfo      domain.PatientInfo       `bson:"userInfo"`
	DoctorInfo    domain.DoctorInfo        `bson:"doctorInfo"`
	Date          string                   `bson:"date"`
	Time          string                   `bson:"time"`
	MedicalReport *string                  `bson:"medicalReport,omitempty"`
	Status        domain.AppointmentStatus `bson:"status"`
	CreatedAt     time.Time                `bson:"createdAt"`
	UpdatedAt     time.Time                `bson:"updatedAt"`
}

func (d appointmentDocument) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		DoctorID:      d.DoctorID,
		UserInfo:      d.UserInfo,
		DoctorInfo:    d.DoctorInfo,
		Date:          d.Date,
		Time:          d.Time,
		MedicalReport: d.MedicalReport,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// AppointmentRepository handles appointment data access operations.
type AppointmentRepository struct {
	coll *mongo.Collection
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

// Create inserts a new appointment.
func (r *AppointmentRepository) Create(ctx context.Context, a domain.Appointment) (*domain.Appointment, error) {
	now := time.Now().UTC()
	doc := appointmentDocument{
		ID:            primitive.NewObjectID(),
		UserID:        a.UserID,
		DoctorID:      a.DoctorID,
		UserInfo:      a.UserInfo,
		DoctorInfo:    a.DoctorInfo,
		Date:          a.Date,
		Time:          a.Time,
		MedicalReport: a.MedicalReport,
		Status:        a.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc appointmentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// List returns every appointment.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{})
}

// ListByUser returns the appointments booked by a patient.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// ListByDoctor returns the appointments booked with a doctor.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	out := make([]domain.Appointment, len(docs))
	for i := range docs {
		out[i] = *docs[i].toDomain()
	}
	return out, nil
}

// UpdateStatus overwrites the appointment's status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc appointmentDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	}, afterUpdate()).Decode(&doc)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// DeleteByDoctor removes every appointment whose doctor reference is one of
// doctorIDs and returns how many were removed.
func (r *AppointmentRepository) DeleteByDoctor(ctx context.Context, doctorIDs ...string) (int64, error) {
	if len(doctorIDs) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"doctorId": bson.M{"$in": doctorIDs}})
	if err != nil {
		return 0, fmt.Errorf("delete appointments: %w", err)
	}
	return res.DeletedCount, nil
}
