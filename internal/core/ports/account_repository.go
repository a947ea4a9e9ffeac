package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// AccountRepository defines persistence for login principals.
type AccountRepository interface {
	// FindByIdentifier looks an account up by its login identifier
	// (username for admins, email for doctors and patients) scoped to
	// the given role.
	FindByIdentifier(ctx context.Context, role domain.Role, identifier string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
