package ports

import (
	"context"
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// AppointmentFilter carries query criteria for listing appointments.
// Empty fields are not applied.
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
	Date      string // YYYY-MM-DD
	Status    domain.AppointmentStatus
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Appointment, error)
	// FindBySlot returns the non-cancelled appointment occupying the
	// doctor's slot on the given date, or ErrAppointmentNotFound.
	FindBySlot(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error

	// UpdateStatus atomically sets the appointment's new status and
	// appends a history entry. The source string is stored as notes.
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, ts time.Time, source string) error
	// InsertEvent persists an event to the status_events audit collection.
	InsertEvent(ctx context.Context, event *domain.AppointmentEvent) error
}
