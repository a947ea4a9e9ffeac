package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// DoctorFilter carries the optional criteria for listing doctors.
// Empty fields are not applied.
type DoctorFilter struct {
	Name      string // partial, case-insensitive match
	Specialty string // exact, case-insensitive match
}

// DoctorRepository defines persistence operations for doctors.
type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	List(ctx context.Context, filter DoctorFilter) ([]*domain.Doctor, error)
	Update(ctx context.Context, d *domain.Doctor) error
	Delete(ctx context.Context, id string) error
}
