package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// stubAPI records every call and serves canned responses.
type stubAPI struct {
	mu sync.Mutex

	loginCalls int
	loginRole  domain.Role
	loginCreds Credentials
	loginCSRF  string
	loginToken string
	loginErr   error

	deleteCalls  int
	deleteID     string
	deleteToken  string
	deleteErr    error
	deletePanics bool

	patientCalls int
	patientToken string
	patient      *domain.Patient
	patientErr   error
}

func (s *stubAPI) Login(_ context.Context, role domain.Role, creds Credentials, csrfToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginCalls++
	s.loginRole = role
	s.loginCreds = creds
	s.loginCSRF = csrfToken
	return s.loginToken, s.loginErr
}

func (s *stubAPI) DeleteDoctor(_ context.Context, doctorID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	s.deleteID = doctorID
	s.deleteToken = token
	if s.deletePanics {
		panic("remote client broke")
	}
	return s.deleteErr
}

func (s *stubAPI) GetPatientData(_ context.Context, token string) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patientCalls++
	s.patientToken = token
	return s.patient, s.patientErr
}

type stubCSRF struct {
	token string
	err   error
	calls int
}

func (s *stubCSRF) AntiForgeryToken(context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

type stubNav struct {
	navigated []string
	replaced  []string
}

func (n *stubNav) Navigate(url string) { n.navigated = append(n.navigated, url) }
func (n *stubNav) Replace(url string)  { n.replaced = append(n.replaced, url) }

type stubDisplay struct {
	removed []string
}

func (d *stubDisplay) RemoveCard(doctorID string) { d.removed = append(d.removed, doctorID) }

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Notify(message string) { n.messages = append(n.messages, message) }

type stubConfirmer struct {
	answer  bool
	prompts []string
}

func (c *stubConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type stubOverlay struct {
	doctor  *domain.Doctor
	patient *domain.Patient
	calls   int
}

func (o *stubOverlay) Show(doctor *domain.Doctor, patient *domain.Patient) {
	o.calls++
	o.doctor = doctor
	o.patient = patient
}

var errNetwork = errors.New("connection refused")
