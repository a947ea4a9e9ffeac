package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// PatientRepository defines persistence operations for patients.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	FindByEmail(ctx context.Context, email string) (*domain.Patient, error)
}
