package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// AuthService implements login and token issuance for the three
// principal types. Admins authenticate by username, doctors and
// patients by email; all three share the accounts collection.
type AuthService struct {
	accounts  ports.AccountRepository
	patients  ports.PatientRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(accounts ports.AccountRepository, patients ports.PatientRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{accounts: accounts, patients: patients, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.login(ctx, domain.RoleAdmin, username, password)
}

func (s *AuthService) DoctorLogin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.login(ctx, domain.RoleDoctor, email, password)
}

func (s *AuthService) PatientLogin(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.login(ctx, domain.RolePatient, email, password)
}

func (s *AuthService) login(ctx context.Context, role domain.Role, identifier, password string) (*ports.LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByIdentifier(ctx, role, identifier)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Account: account}, nil
}

func (s *AuthService) RegisterPatient(ctx context.Context, input ports.RegisterPatientInput) (*domain.Patient, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.accounts.FindByIdentifier(ctx, domain.RolePatient, input.Email); err == nil {
		return nil, domain.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patient, err := s.patients.Create(ctx, &domain.Patient{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.Create(ctx, &domain.Account{
		Identifier:   input.Email,
		PasswordHash: string(hash),
		Role:         domain.RolePatient,
		SubjectID:    patient.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return nil, err
	}

	return patient, nil
}

// ValidateToken verifies the signature and the role claim. A token
// issued to a patient account satisfies a loggedPatient expectation:
// the elevated role only ever exists client-side.
func (s *AuthService) ValidateToken(token string, expected domain.Role) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	roleClaim, _ := claims["role"].(string)
	role := domain.ParseRole(roleClaim)
	if expected != "" && role != expected {
		if !(expected == domain.RoleLoggedPatient && role == domain.RolePatient) {
			return nil, domain.ErrForbidden
		}
	}

	sub, _ := claims["sub"].(string)
	subjectID, _ := claims["subject_id"].(string)
	return &ports.TokenClaims{Subject: sub, Role: role, SubjectID: subjectID}, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":        account.Identifier,
		"role":       string(account.Role),
		"subject_id": account.SubjectID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
