package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

func seedScheduled(t *testing.T, repo *stubAppointmentRepo) *domain.Appointment {
	t.Helper()
	a, err := repo.Create(context.Background(), &domain.Appointment{
		DoctorID: "doc_1", PatientID: "pat_1", Date: "2026-09-01", Slot: "09:00-10:00",
		Status: domain.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return a
}

func TestEventService_Process_ValidTransition(t *testing.T) {
	appointments := &stubAppointmentRepo{}
	a := seedScheduled(t, appointments)
	svc := NewAppointmentEventService(appointments, newStubDedup(), zerolog.Nop())

	ts := time.Now().UTC()
	err := svc.Process(context.Background(), ports.AppointmentEventInput{
		AppointmentID: a.ID, Status: "checked_in", Timestamp: ts, Source: "front_desk",
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	updated, _ := appointments.FindByID(context.Background(), a.ID)
	if updated.Status != domain.StatusCheckedIn {
		t.Fatalf("expected checked_in, got %s", updated.Status)
	}
	if len(appointments.events) != 1 || appointments.events[0].Source != "front_desk" {
		t.Fatalf("expected one audit event, got %v", appointments.events)
	}
}

func TestEventService_Process_InvalidTransition(t *testing.T) {
	appointments := &stubAppointmentRepo{}
	a := seedScheduled(t, appointments)
	svc := NewAppointmentEventService(appointments, newStubDedup(), zerolog.Nop())

	err := svc.Process(context.Background(), ports.AppointmentEventInput{
		AppointmentID: a.ID, Status: "completed", Timestamp: time.Now(), Source: "front_desk",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	unchanged, _ := appointments.FindByID(context.Background(), a.ID)
	if unchanged.Status != domain.StatusScheduled {
		t.Fatalf("failed event must not change status, got %s", unchanged.Status)
	}
}

func TestEventService_Process_UnknownAppointment(t *testing.T) {
	svc := NewAppointmentEventService(&stubAppointmentRepo{}, newStubDedup(), zerolog.Nop())

	err := svc.Process(context.Background(), ports.AppointmentEventInput{
		AppointmentID: "ghost", Status: "checked_in", Timestamp: time.Now(), Source: "front_desk",
	})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	appointments := &stubAppointmentRepo{}
	a := seedScheduled(t, appointments)
	svc := NewAppointmentEventService(appointments, newStubDedup(), zerolog.Nop())

	ts := time.Now().UTC()
	event := ports.AppointmentEventInput{AppointmentID: a.ID, Status: "checked_in", Timestamp: ts, Source: "front_desk"}

	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	// The replay would be an invalid transition if it were applied, but
	// the dedup key catches it first.
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate must be silently skipped: %v", err)
	}
	if len(appointments.events) != 1 {
		t.Fatalf("duplicate must not append a second audit event, got %d", len(appointments.events))
	}
}

func TestEventService_Process_AuditFailureIsNotFatal(t *testing.T) {
	appointments := &stubAppointmentRepo{insertErr: errors.New("audit collection down")}
	a := seedScheduled(t, appointments)
	svc := NewAppointmentEventService(appointments, newStubDedup(), zerolog.Nop())

	err := svc.Process(context.Background(), ports.AppointmentEventInput{
		AppointmentID: a.ID, Status: "checked_in", Timestamp: time.Now(), Source: "front_desk",
	})
	if err != nil {
		t.Fatalf("audit insert failure must not fail the event: %v", err)
	}

	updated, _ := appointments.FindByID(context.Background(), a.ID)
	if updated.Status != domain.StatusCheckedIn {
		t.Fatalf("status update must still apply, got %s", updated.Status)
	}
}
