package ports

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token   string
	Account *domain.Account
}

// AuthService issues and validates session tokens for the three login
// principal types.
type AuthService interface {
	// AdminLogin authenticates an administrator by username.
	AdminLogin(ctx context.Context, username, password string) (*LoginResult, error)
	// DoctorLogin authenticates a doctor by email.
	DoctorLogin(ctx context.Context, email, password string) (*LoginResult, error)
	// PatientLogin authenticates a patient by email.
	PatientLogin(ctx context.Context, email, password string) (*LoginResult, error)
	// RegisterPatient creates a patient record plus its login account.
	RegisterPatient(ctx context.Context, input RegisterPatientInput) (*domain.Patient, error)
	// ValidateToken verifies the token signature and that its role
	// claim matches expected, returning the parsed claims.
	ValidateToken(token string, expected domain.Role) (*TokenClaims, error)
}

// RegisterPatientInput carries the data for patient self-registration.
type RegisterPatientInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	Subject   string // account login identifier
	Role      domain.Role
	SubjectID string // doctor or patient record ID, empty for admins
}
