package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

const (
	appointmentCollection = "appointments"
	eventCollection       = "status_events"
)

type MongoAppointmentRepository struct {
	coll   *mongo.Collection
	events *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{
		coll:   db.Collection(appointmentCollection),
		events: db.Collection(eventCollection),
	}
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc := *a
	doc.ID = ""

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAppointmentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Appointment, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

func (r *MongoAppointmentRepository) FindBySlot(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error) {
	return r.findOne(ctx, bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"slot":      slot,
		"status":    bson.M{"$ne": string(domain.StatusCancelled)},
	})
}

func (r *MongoAppointmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Appointment, error) {
	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoAppointmentRepository) List(ctx context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, error) {
	query := bson.M{}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*domain.Appointment
	for cursor.Next(ctx) {
		var doc appointmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, doc.toDomain())
	}
	return appointments, cursor.Err()
}

func (r *MongoAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"date":  a.Date,
		"slot":  a.Slot,
		"notes": a.Notes,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// UpdateStatus atomically sets the new status and appends the history
// entry in a single update.
func (r *MongoAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, ts time.Time, source string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	update := bson.M{
		"$set": bson.M{"status": string(status)},
		"$push": bson.M{"status_history": bson.M{
			"status":    string(status),
			"timestamp": ts,
			"notes":     source,
		}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *MongoAppointmentRepository) InsertEvent(ctx context.Context, event *domain.AppointmentEvent) error {
	doc := bson.M{
		"appointment_id": event.AppointmentID,
		"status":         string(event.Status),
		"timestamp":      event.Timestamp,
		"source":         event.Source,
		"notes":          event.Notes,
	}
	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// appointmentDoc mirrors domain.Appointment with a Mongo ObjectID key.
type appointmentDoc struct {
	ID             primitive.ObjectID          `bson:"_id,omitempty"`
	DoctorID       string                      `bson:"doctor_id"`
	PatientID      string                      `bson:"patient_id"`
	Date           string                      `bson:"date"`
	Slot           string                      `bson:"slot"`
	Status         string                      `bson:"status"`
	Notes          string                      `bson:"notes,omitempty"`
	IdempotencyKey string                      `bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time                   `bson:"created_at"`
	StatusHistory  []domain.StatusHistoryEntry `bson:"status_history"`
}

func (d appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:             d.ID.Hex(),
		DoctorID:       d.DoctorID,
		PatientID:      d.PatientID,
		Date:           d.Date,
		Slot:           d.Slot,
		Status:         domain.AppointmentStatus(d.Status),
		Notes:          d.Notes,
		IdempotencyKey: d.IdempotencyKey,
		CreatedAt:      d.CreatedAt,
		StatusHistory:  d.StatusHistory,
	}
}
