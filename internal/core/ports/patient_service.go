package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// PatientAppointmentsInput filters a patient's appointment history.
// Condition is "past", "future" or empty; DoctorName is a partial
// case-insensitive match.
type PatientAppointmentsInput struct {
	PatientID  string
	Condition  string
	DoctorName string
}

// PatientService defines use-case operations for patients.
type PatientService interface {
	Get(ctx context.Context, id string) (*domain.Patient, error)
	Appointments(ctx context.Context, input PatientAppointmentsInput) ([]*domain.Appointment, error)
}
