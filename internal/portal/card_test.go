package portal

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

func testDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:             "doc_1",
		Name:           "Ann Lee",
		Specialty:      "Cardiology",
		Email:          "a@x.com",
		AvailableTimes: []string{"Mon 9am", "Tue 2pm"},
	}
}

type rendererDeps struct {
	store     *MemoryStore
	api       *stubAPI
	display   *stubDisplay
	notifier  *stubNotifier
	confirmer *stubConfirmer
	overlay   *stubOverlay
}

func newTestRenderer(logger zerolog.Logger) (*CardRenderer, *rendererDeps) {
	deps := &rendererDeps{
		store:     NewMemoryStore(),
		api:       &stubAPI{},
		display:   &stubDisplay{},
		notifier:  &stubNotifier{},
		confirmer: &stubConfirmer{answer: true},
		overlay:   &stubOverlay{},
	}
	r := NewCardRenderer(deps.store, deps.api, deps.display, deps.notifier, deps.confirmer, deps.overlay, logger)
	return r, deps
}

// countingWriter counts log events, one write per event.
type countingWriter struct{ events int }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.events++
	return len(p), nil
}

func TestRenderCard_GuestSeesInfoAndNoAction(t *testing.T) {
	r, _ := newTestRenderer(zerolog.Nop())

	card := r.RenderCard(testDoctor())

	if card.Name != "Ann Lee" {
		t.Fatalf("unexpected name: %q", card.Name)
	}
	want := []string{
		"Specialty: Cardiology",
		"Email: a@x.com",
		"Available: Mon 9am, Tue 2pm",
	}
	if len(card.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), card.Lines)
	}
	for i := range want {
		if card.Lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], card.Lines[i])
		}
	}
	if card.Action != nil {
		t.Fatalf("guest card must carry no action, got %q", card.Action.Label)
	}
}

func TestRenderCard_NoAvailabilityFallback(t *testing.T) {
	r, _ := newTestRenderer(zerolog.Nop())

	doctor := testDoctor()
	doctor.AvailableTimes = nil
	card := r.RenderCard(doctor)

	if card.Lines[2] != "Available: Not available" {
		t.Fatalf("expected fallback availability line, got %q", card.Lines[2])
	}
}

func TestRenderCard_NilDoctorRendersInertWithOneErrorLog(t *testing.T) {
	w := &countingWriter{}
	r, _ := newTestRenderer(zerolog.New(w))

	card := r.RenderCard(nil)

	if card == nil || !card.Inert {
		t.Fatalf("expected inert card, got %+v", card)
	}
	if card.Action != nil || len(card.Lines) != 0 {
		t.Fatalf("inert card must carry nothing: %+v", card)
	}
	if w.events != 1 {
		t.Fatalf("expected exactly one error log, got %d", w.events)
	}
}

func TestRenderCard_ActionByRole(t *testing.T) {
	cases := []struct {
		role  string
		label string
	}{
		{"admin", "Delete"},
		{"loggedPatient", "Book Now"},
		{"patient", "Book Now"},
		{"doctor", ""},
		{"", ""},
		{"superuser", ""},
	}
	for _, tc := range cases {
		r, deps := newTestRenderer(zerolog.Nop())
		if tc.role != "" {
			deps.store.Set(KeyRole, tc.role)
		}

		card := r.RenderCard(testDoctor())

		if tc.label == "" {
			if card.Action != nil {
				t.Fatalf("role %q: expected no action, got %q", tc.role, card.Action.Label)
			}
			continue
		}
		if card.Action == nil || card.Action.Label != tc.label {
			t.Fatalf("role %q: expected action %q, got %+v", tc.role, tc.label, card.Action)
		}
	}
}

func TestDeleteAction_ConfirmDeclinedMakesNoCall(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "admin")
	deps.store.Set(KeyToken, "tok")
	deps.confirmer.answer = false

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if len(deps.confirmer.prompts) != 1 || deps.confirmer.prompts[0] != "Permanently delete Dr. Ann Lee?" {
		t.Fatalf("unexpected prompts: %v", deps.confirmer.prompts)
	}
	if deps.api.deleteCalls != 0 {
		t.Fatalf("declined confirmation must not reach the network")
	}
	if len(deps.notifier.messages) != 0 {
		t.Fatalf("decline is not an error: %v", deps.notifier.messages)
	}
}

func TestDeleteAction_MissingToken(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "admin") // role present, token gone

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if deps.api.deleteCalls != 0 {
		t.Fatalf("missing token must not reach the network")
	}
	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Delete failed: Authentication required" {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

func TestDeleteAction_Success(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "admin")
	deps.store.Set(KeyToken, "tok")

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if deps.api.deleteCalls != 1 || deps.api.deleteID != "doc_1" || deps.api.deleteToken != "tok" {
		t.Fatalf("unexpected delete call: %+v", deps.api)
	}
	if len(deps.display.removed) != 1 || deps.display.removed[0] != "doc_1" {
		t.Fatalf("expected card removed, got %v", deps.display.removed)
	}
	if len(deps.notifier.messages) != 0 {
		t.Fatalf("success must not notify: %v", deps.notifier.messages)
	}
}

func TestDeleteAction_RemoteFailure(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "admin")
	deps.store.Set(KeyToken, "tok")
	deps.api.deleteErr = &TransportError{Msg: "service unavailable", Err: errNetwork}

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if len(deps.display.removed) != 0 {
		t.Fatalf("failed delete must not remove the card")
	}
	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Delete failed: service unavailable" {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

func TestBookAction_UnauthenticatedOnlyPrompts(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "patient")

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if deps.api.patientCalls != 0 || deps.api.deleteCalls != 0 || deps.api.loginCalls != 0 {
		t.Fatalf("unauthenticated booking must never touch the network")
	}
	if deps.overlay.calls != 0 {
		t.Fatalf("unauthenticated booking must not open the overlay")
	}
	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Please login to book an appointment" {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

func TestBookAction_AuthenticatedSessionExpired(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "loggedPatient") // token missing: expired mid-session

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if deps.api.patientCalls != 0 {
		t.Fatalf("expired session must not reach the network")
	}
	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Booking failed: Session expired" {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

func TestBookAction_AuthenticatedSuccess(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "loggedPatient")
	deps.store.Set(KeyToken, "tok")
	deps.api.patient = &domain.Patient{ID: "pat_1", Name: "Bob"}

	doctor := testDoctor()
	card := r.RenderCard(doctor)
	card.Action.Invoke(context.Background())

	if deps.api.patientCalls != 1 || deps.api.patientToken != "tok" {
		t.Fatalf("expected patient lookup with session token: %+v", deps.api)
	}
	if deps.overlay.calls != 1 || deps.overlay.doctor != doctor || deps.overlay.patient.ID != "pat_1" {
		t.Fatalf("expected overlay with doctor and patient, got %+v", deps.overlay)
	}
	if len(deps.notifier.messages) != 0 {
		t.Fatalf("success must not notify: %v", deps.notifier.messages)
	}
}

func TestBookAction_PatientLookupFailure(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "loggedPatient")
	deps.store.Set(KeyToken, "tok")
	deps.api.patientErr = &AuthError{Msg: "token rejected"}

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background())

	if deps.overlay.calls != 0 {
		t.Fatalf("failed lookup must not open the overlay")
	}
	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Booking failed: token rejected" {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

func TestRunAction_ContainsPanics(t *testing.T) {
	r, deps := newTestRenderer(zerolog.Nop())
	deps.store.Set(KeyRole, "admin")
	deps.store.Set(KeyToken, "tok")
	deps.api.deletePanics = true

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background()) // must not panic

	if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "Something went wrong. Please try again." {
		t.Fatalf("unexpected notifications: %v", deps.notifier.messages)
	}
}

// panicNotifier simulates a broken reporting surface.
type panicNotifier struct{}

func (panicNotifier) Notify(string) { panic("notifier down") }

func TestBookAction_UnauthenticatedPromptPanicIsContained(t *testing.T) {
	w := &countingWriter{}
	store := NewMemoryStore()
	store.Set(KeyRole, "patient")
	api := &stubAPI{}
	r := NewCardRenderer(store, api, &stubDisplay{}, panicNotifier{}, &stubConfirmer{answer: true}, &stubOverlay{}, zerolog.New(w))

	card := r.RenderCard(testDoctor())
	card.Action.Invoke(context.Background()) // must not panic

	if api.patientCalls != 0 || api.deleteCalls != 0 || api.loginCalls != 0 {
		t.Fatalf("unauthenticated booking must never touch the network")
	}
	if w.events != 1 {
		t.Fatalf("expected exactly one error log for the broken notifier, got %d", w.events)
	}
}

func TestRunAction_SerialisesPerDoctor(t *testing.T) {
	r, _ := newTestRenderer(zerolog.Nop())

	if !r.acquire("doc_1") {
		t.Fatalf("first acquire must succeed")
	}
	if r.acquire("doc_1") {
		t.Fatalf("second acquire for the same doctor must fail")
	}
	if !r.acquire("doc_2") {
		t.Fatalf("other doctors are independent")
	}
	r.release("doc_1")
	if !r.acquire("doc_1") {
		t.Fatalf("acquire after release must succeed")
	}
}
