package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

type userDocument struct {
	ID                  primitive.ObjectID    `bson:"_id,omitempty"`
	Name                string                `bson:"name"`
	Email               string                `bson:"email"`
	PhoneNumber         string                `bson:"phoneNumber"`
	Password            string                `bson:"password"`
	IsAdmin             bool                  `bson:"isAdmin"`
	IsDoctor            bool                  `bson:"isDoctor"`
	SeenNotifications   []domain.Notification `bson:"seenNotifications"`
	UnseenNotifications []domain.Notification `bson:"unseenNotifications"`
	CreatedAt           time.Time             `bson:"createdAt"`
	UpdatedAt           time.Time             `bson:"updatedAt"`
}

func (d userDocument) toDomain() *domain.User {
	u := &domain.User{
		ID:                  d.ID.Hex(),
		Name:                d.Name,
		Email:               d.Email,
		PhoneNumber:         d.PhoneNumber,
		PasswordHash:        d.Password,
		IsAdmin:             d.IsAdmin,
		IsDoctor:            d.IsDoctor,
		SeenNotifications:   d.SeenNotifications,
		UnseenNotifications: d.UnseenNotifications,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
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
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user. A duplicate email yields domain.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := userDocument{
		ID:                  primitive.NewObjectID(),
		Name:                user.Name,
		Email:               user.Email,
		PhoneNumber:         user.PhoneNumber,
		Password:            user.PasswordHash,
		IsAdmin:             user.IsAdmin,
		IsDoctor:            user.IsDoctor,
		SeenNotifications:   []domain.Notification{},
		UnseenNotifications: []domain.Notification{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail retrieves a user by their email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{})
}

// ListAdmins returns every admin user.
func (r *UserRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{"isAdmin": true})
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]domain.User, len(docs))
	for i := range docs {
		out[i] = *docs[i].toDomain()
	}
	return out, nil
}

// PushUnseenNotification appends n to the user's unseen inbox with $push.
func (r *UserRepository) PushUnseenNotification(ctx context.Context, userID string, n domain.Notification) error {
	return r.updateOne(ctx, userID, bson.M{
		"$push": bson.M{"unseenNotifications": n},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// SetDoctorFlag sets the user's isDoctor flag.
func (r *UserRepository) SetDoctorFlag(ctx context.Context, userID string, isDoctor bool) error {
	return r.updateOne(ctx, userID, bson.M{
		"$set": bson.M{"isDoctor": isDoctor, "updatedAt": time.Now().UTC()},
	})
}

func (r *UserRepository) updateOne(ctx context.Context, userID string, update bson.M) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkNotificationsSeen overwrites the seen inbox with the unseen one and
// empties the unseen inbox, as one pipeline update on the document.
func (r *UserRepository) MarkNotificationsSeen(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "seenNotifications", Value: bson.M{"$ifNull": bson.A{"$unseenNotifications", bson.A{}}}},
			{Key: "unseenNotifications", Value: bson.A{}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	})
}

// ClearNotifications empties both inboxes.
func (r *UserRepository) ClearNotifications(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{
		"$set": bson.M{
			"seenNotifications":   bson.A{},
			"unseenNotifications": bson.A{},
			"updatedAt":           time.Now().UTC(),
		},
	})
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, userID string, update any) (*domain.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&doc)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}
	return doc.toDomain(), nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
