package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// PrescriptionRepository defines persistence operations for
// prescriptions.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error)
	FindByAppointment(ctx context.Context, appointmentID string) ([]*domain.Prescription, error)
}
