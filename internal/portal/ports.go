package portal

import (
	"context"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// Store is the durable client-side key/value state the portal keeps a
// session in. Values are opaque strings; last write wins.
type Store interface {
	Set(key, value string)
	Get(key string) string
	Delete(key string)
	Clear()
}

// Credentials carries a login identifier and password. Identifier is a
// username for admins and an email for doctors.
type Credentials struct {
	Identifier string
	Password   string
}

// ClinicAPI is the remote clinic backend as seen by the portal. Login
// errors surface as *TransportError (network failure) or *AuthError
// (remote rejection carrying the server's message).
type ClinicAPI interface {
	Login(ctx context.Context, role domain.Role, creds Credentials, csrfToken string) (token string, err error)
	DeleteDoctor(ctx context.Context, doctorID, token string) error
	GetPatientData(ctx context.Context, token string) (*domain.Patient, error)
}

// AntiForgeryTokenSource supplies the page-level anti-forgery token
// attached to credential submissions.
type AntiForgeryTokenSource interface {
	AntiForgeryToken(ctx context.Context) (string, error)
}

// Navigator performs page navigation. Navigate issues a full
// navigation; Replace swaps the visible location without adding a
// history entry.
type Navigator interface {
	Navigate(url string)
	Replace(url string)
}

// Display is the surface rendered cards live on.
type Display interface {
	RemoveCard(doctorID string)
}

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(message string)
}

// Confirmer asks the user a yes/no question before a destructive
// action proceeds.
type Confirmer interface {
	Confirm(prompt string) bool
}

// BookingOverlay presents the booking flow for a doctor and the
// current patient.
type BookingOverlay interface {
	Show(doctor *domain.Doctor, patient *domain.Patient)
}

// ModalSurface opens a named modal (login dialogs and the like).
type ModalSurface interface {
	OpenModal(name string)
}
