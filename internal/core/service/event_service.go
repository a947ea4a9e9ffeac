package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, appointmentID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, appointmentID, status string, ts time.Time) error
}

type eventService struct {
	appointments ports.AppointmentRepository
	dedup        DedupChecker
	log          zerolog.Logger
}

// NewAppointmentEventService returns an AppointmentEventService
// implementation.
func NewAppointmentEventService(appointments ports.AppointmentRepository, dedup DedupChecker, log zerolog.Logger) ports.AppointmentEventService {
	return &eventService{appointments: appointments, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single appointment
// status event.
func (s *eventService) Process(ctx context.Context, in ports.AppointmentEventInput) error {
	newStatus := domain.AppointmentStatus(in.Status)

	// Idempotency check; duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.AppointmentID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", in.AppointmentID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("appointment_id", in.AppointmentID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if !appointment.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, newStatus)
	}

	// Mark before writing so a retry of the same event is dropped.
	if markErr := s.dedup.Mark(ctx, in.AppointmentID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("appointment_id", in.AppointmentID).Msg("failed to set dedup key")
	}

	if err := s.appointments.UpdateStatus(ctx, in.AppointmentID, newStatus, in.Timestamp, in.Source); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}

	// Audit trail insert is non-fatal.
	audit := &domain.AppointmentEvent{
		AppointmentID: in.AppointmentID,
		Status:        newStatus,
		Timestamp:     in.Timestamp,
		Source:        in.Source,
		Notes:         in.Notes,
	}
	if err := s.appointments.InsertEvent(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("appointment_id", in.AppointmentID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("appointment_id", in.AppointmentID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("event processed")

	return nil
}
