package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// SaveDoctorInput carries the data for creating or updating a doctor.
type SaveDoctorInput struct {
	Name           string
	Specialty      string
	Email          string
	Phone          string
	AvailableTimes []string
}

// ListDoctorsInput carries the filter criteria for the list endpoint.
// Period is "am", "pm" or empty.
type ListDoctorsInput struct {
	Name      string
	Specialty string
	Period    string
}

// DoctorService defines use-case operations for doctors.
type DoctorService interface {
	List(ctx context.Context, input ListDoctorsInput) ([]*domain.Doctor, error)
	Get(ctx context.Context, id string) (*domain.Doctor, error)
	Create(ctx context.Context, input SaveDoctorInput) (*domain.Doctor, error)
	Update(ctx context.Context, id string, input SaveDoctorInput) (*domain.Doctor, error)
	Delete(ctx context.Context, id string) error
	// Availability returns the doctor's configured slots for the given
	// date (YYYY-MM-DD) minus any slot already taken by a non-cancelled
	// appointment. Order follows the doctor's configured order.
	Availability(ctx context.Context, doctorID, date string) ([]string, error)
}
