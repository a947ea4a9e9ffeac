package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// SavePrescriptionInput carries a doctor's prescription for one of
// their appointments. DoctorID comes from the caller's token, never
// from the payload.
type SavePrescriptionInput struct {
	DoctorID      string
	AppointmentID string
	Medications   []domain.Medication
	Notes         string
}

// PrescriptionService defines use-case operations for prescriptions.
// Both operations are scoped to the issuing doctor: an appointment
// that belongs to another doctor is forbidden, not hidden.
type PrescriptionService interface {
	Save(ctx context.Context, input SavePrescriptionInput) (*domain.Prescription, error)
	ForAppointment(ctx context.Context, doctorID, appointmentID string) ([]*domain.Prescription, error)
}
