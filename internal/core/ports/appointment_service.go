package ports

import (
	"context"
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// BookAppointmentInput carries all data needed to book an appointment.
type BookAppointmentInput struct {
	DoctorID       string
	PatientID      string
	Date           string // YYYY-MM-DD
	Slot           string
	Notes          string
	IdempotencyKey string
}

// BookAppointmentResult is returned by the service after booking.
type BookAppointmentResult struct {
	AppointmentID string
	Status        string
	CreatedAt     time.Time
	// AlreadyExisted is true when the idempotency key matched an
	// existing appointment.
	AlreadyExisted bool
}

// RescheduleInput moves an existing appointment to a new date/slot.
type RescheduleInput struct {
	AppointmentID string
	PatientID     string
	Date          string
	Slot          string
}

// AppointmentService defines use-case operations for appointments.
type AppointmentService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*BookAppointmentResult, error)
	Reschedule(ctx context.Context, input RescheduleInput) (*domain.Appointment, error)
	// Cancel cancels an appointment; only the owning patient may cancel.
	Cancel(ctx context.Context, appointmentID, patientID string) error
	// ForDoctor lists a doctor's appointments for a calendar day,
	// optionally filtered by partial patient name.
	ForDoctor(ctx context.Context, doctorID, date, patientName string) ([]*domain.Appointment, error)
}

// AppointmentEventInput is the DTO passed from the transport layer to
// the event service.
type AppointmentEventInput struct {
	AppointmentID string
	Status        string
	Timestamp     time.Time
	Source        string
	Notes         string
}

// AppointmentEventService processes incoming appointment status events.
type AppointmentEventService interface {
	Process(ctx context.Context, event AppointmentEventInput) error
}
