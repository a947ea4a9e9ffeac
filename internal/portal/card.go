package portal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// Card is the rendered representation of one doctor: its info lines
// plus at most one role-gated action. Inert cards (rendered from bad
// input) carry nothing and do nothing.
type Card struct {
	DoctorID string
	Name     string
	Lines    []string
	Action   *CardAction
	Inert    bool
}

// CardAction is the affordance attached to a card. Invoke never
// panics and never returns an error: every failure is contained
// inside the handler and surfaced to the user as a message.
type CardAction struct {
	Label  string
	Invoke func(ctx context.Context)
}

// CardRenderer builds doctor cards, consulting the session store to
// decide which action each card gets.
type CardRenderer struct {
	store     Store
	api       ClinicAPI
	display   Display
	notifier  Notifier
	confirmer Confirmer
	overlay   BookingOverlay
	logger    zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCardRenderer(store Store, api ClinicAPI, display Display, notifier Notifier, confirmer Confirmer, overlay BookingOverlay, logger zerolog.Logger) *CardRenderer {
	return &CardRenderer{
		store:     store,
		api:       api,
		display:   display,
		notifier:  notifier,
		confirmer: confirmer,
		overlay:   overlay,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// RenderCard builds the card for a doctor. A nil doctor renders an
// inert placeholder rather than failing: one card's bad data must not
// take the surrounding view down.
func (r *CardRenderer) RenderCard(doctor *domain.Doctor) *Card {
	if doctor == nil {
		r.logger.Error().Msg("invalid doctor data provided")
		return &Card{Inert: true}
	}

	card := &Card{
		DoctorID: doctor.ID,
		Name:     doctor.Name,
		Lines: []string{
			"Specialty: " + doctor.Specialty,
			"Email: " + doctor.Email,
			"Available: " + formatAvailability(doctor.AvailableTimes),
		},
	}

	switch CurrentRole(r.store) {
	case domain.RoleAdmin:
		card.Action = r.deleteAction(doctor)
	case domain.RoleLoggedPatient:
		card.Action = r.bookAction(doctor, true)
	case domain.RolePatient:
		card.Action = r.bookAction(doctor, false)
	case domain.RoleDoctor, domain.RoleGuest:
		// No affordance.
	}

	return card
}

// deleteAction removes the doctor after interactive confirmation.
func (r *CardRenderer) deleteAction(doctor *domain.Doctor) *CardAction {
	return &CardAction{
		Label: "Delete",
		Invoke: func(ctx context.Context) {
			r.runAction(doctor.ID, "delete", func() error {
				if !r.confirmer.Confirm(fmt.Sprintf("Permanently delete Dr. %s?", doctor.Name)) {
					return nil
				}

				token := r.store.Get(KeyToken)
				if token == "" {
					return &AuthError{Msg: "Authentication required"}
				}

				if err := r.api.DeleteDoctor(ctx, doctor.ID, token); err != nil {
					return err
				}

				r.display.RemoveCard(doctor.ID)
				return nil
			})
		},
	}
}

// bookAction starts the booking flow. The unauthenticated variant only
// prompts for login and never touches the network.
func (r *CardRenderer) bookAction(doctor *domain.Doctor, authenticated bool) *CardAction {
	return &CardAction{
		Label: "Book Now",
		Invoke: func(ctx context.Context) {
			r.runAction(doctor.ID, "book", func() error {
				if !authenticated {
					r.notify("Please login to book an appointment")
					return nil
				}

				token := r.store.Get(KeyToken)
				if token == "" {
					return &AuthError{Msg: "Session expired"}
				}

				patient, err := r.api.GetPatientData(ctx, token)
				if err != nil {
					return err
				}

				r.overlay.Show(doctor, patient)
				return nil
			})
		},
	}
}

// runAction is the single containment boundary for card handlers: it
// serialises actions per doctor, recovers panics, and converts every
// failure into a logged, user-visible message. Nothing escapes to the
// surrounding view.
func (r *CardRenderer) runAction(doctorID, kind string, fn func() error) {
	if !r.acquire(doctorID) {
		r.logger.Warn().Str("doctor_id", doctorID).Str("action", kind).Msg("action already in flight, dropped")
		return
	}
	defer r.release(doctorID)

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Interface("panic", rec).Str("doctor_id", doctorID).Str("action", kind).Msg("card action panicked")
			r.notify("Something went wrong. Please try again.")
		}
	}()

	if err := fn(); err != nil {
		r.logger.Error().Err(err).Str("doctor_id", doctorID).Str("action", kind).Msg("card action failed")
		r.notify(actionFailureMessage(kind, err))
	}
}

// notify surfaces a message to the user. A panicking notifier is
// logged, never propagated: the containment boundary holds even when
// the reporting surface itself is broken.
func (r *CardRenderer) notify(msg string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Interface("panic", rec).Msg("notifier panicked")
		}
	}()
	r.notifier.Notify(msg)
}

func (r *CardRenderer) acquire(doctorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[doctorID]; busy {
		return false
	}
	r.inflight[doctorID] = struct{}{}
	return true
}

func (r *CardRenderer) release(doctorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, doctorID)
}

func actionFailureMessage(kind string, err error) string {
	switch kind {
	case "delete":
		return "Delete failed: " + err.Error()
	case "book":
		return "Booking failed: " + err.Error()
	default:
		return err.Error()
	}
}

func formatAvailability(times []string) string {
	if len(times) == 0 {
		return "Not available"
	}
	return strings.Join(times, ", ")
}
