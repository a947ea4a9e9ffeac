package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

const prescriptionCollection = "prescriptions"

type MongoPrescriptionRepository struct {
	coll *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) *MongoPrescriptionRepository {
	return &MongoPrescriptionRepository{coll: db.Collection(prescriptionCollection)}
}

func (r *MongoPrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	doc := *p
	doc.ID = ""

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert prescription: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoPrescriptionRepository) FindByAppointment(ctx context.Context, appointmentID string) ([]*domain.Prescription, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"appointment_id": appointmentID})
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var prescriptions []*domain.Prescription
	for cursor.Next(ctx) {
		var doc prescriptionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode prescription: %w", err)
		}
		prescriptions = append(prescriptions, doc.toDomain())
	}
	return prescriptions, cursor.Err()
}

// prescriptionDoc mirrors domain.Prescription with a Mongo ObjectID key.
type prescriptionDoc struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	AppointmentID string              `bson:"appointment_id"`
	DoctorID      string              `bson:"doctor_id"`
	PatientName   string              `bson:"patient_name"`
	Medications   []domain.Medication `bson:"medications"`
	Notes         string              `bson:"doctor_notes,omitempty"`
	Active        bool                `bson:"is_active"`
	CreatedAt     time.Time           `bson:"creation_date"`
}

func (d prescriptionDoc) toDomain() *domain.Prescription {
	return &domain.Prescription{
		ID:            d.ID.Hex(),
		AppointmentID: d.AppointmentID,
		DoctorID:      d.DoctorID,
		PatientName:   d.PatientName,
		Medications:   d.Medications,
		Notes:         d.Notes,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
	}
}
