package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

const doctorCollection = "doctors"

type MongoDoctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *MongoDoctorRepository {
	return &MongoDoctorRepository{coll: db.Collection(doctorCollection)}
}

type mongoDoctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Specialty      string             `bson:"specialty"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone,omitempty"`
	AvailableTimes []string           `bson:"available_times"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (r *MongoDoctorRepository) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	doc := mongoDoctor{
		Name:           d.Name,
		Specialty:      d.Specialty,
		Email:          d.Email,
		Phone:          d.Phone,
		AvailableTimes: d.AvailableTimes,
		CreatedAt:      d.CreatedAt.Unix(),
		UpdatedAt:      d.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDoctorExists
		}
		return nil, fmt.Errorf("insert doctor: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoDoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDoctorNotFound
	}

	var md mongoDoctor
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return toDoctor(md), nil
}

func (r *MongoDoctorRepository) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	var md mongoDoctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor by email: %w", err)
	}
	return toDoctor(md), nil
}

// doctorQuery builds the Mongo filter for List. User-supplied values
// are quoted so regex metacharacters match literally.
func doctorQuery(filter ports.DoctorFilter) bson.M {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.Specialty != "" {
		query["specialty"] = bson.M{"$regex": "^" + regexp.QuoteMeta(filter.Specialty) + "$", "$options": "i"}
	}
	return query
}

func (r *MongoDoctorRepository) List(ctx context.Context, filter ports.DoctorFilter) ([]*domain.Doctor, error) {
	cursor, err := r.coll.Find(ctx, doctorQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*domain.Doctor
	for cursor.Next(ctx) {
		var md mongoDoctor
		if err := cursor.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode doctor: %w", err)
		}
		doctors = append(doctors, toDoctor(md))
	}
	return doctors, cursor.Err()
}

func (r *MongoDoctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	oid, err := primitive.ObjectIDFromHex(d.ID)
	if err != nil {
		return domain.ErrDoctorNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":            d.Name,
		"specialty":       d.Specialty,
		"email":           d.Email,
		"phone":           d.Phone,
		"available_times": d.AvailableTimes,
		"updated_at":      d.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

func (r *MongoDoctorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDoctorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

func toDoctor(md mongoDoctor) *domain.Doctor {
	return &domain.Doctor{
		ID:             md.ID.Hex(),
		Name:           md.Name,
		Specialty:      md.Specialty,
		Email:          md.Email,
		Phone:          md.Phone,
		AvailableTimes: md.AvailableTimes,
		CreatedAt:      unixToTime(md.CreatedAt),
		UpdatedAt:      unixToTime(md.UpdatedAt),
	}
}
