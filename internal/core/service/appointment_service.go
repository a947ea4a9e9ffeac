package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// AppointmentService implements booking, rescheduling, and cancellation.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	doctors      ports.DoctorRepository
	patients     ports.PatientRepository
	logger       zerolog.Logger
}

func NewAppointmentService(appointments ports.AppointmentRepository, doctors ports.DoctorRepository, patients ports.PatientRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{appointments: appointments, doctors: doctors, patients: patients, logger: logger}
}

// Book creates a new appointment. If an idempotency key is provided
// and already seen, the previously created appointment is returned
// without side effects.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*ports.BookAppointmentResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.appointments.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("appointment_id", existing.ID).Msg("idempotent replay")
			return &ports.BookAppointmentResult{
				AppointmentID:  existing.ID,
				Status:         string(existing.Status),
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	doctor, err := s.doctors.FindByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if !slotConfigured(doctor, input.Slot) {
		return nil, domain.ErrSlotUnavailable
	}

	if _, err := s.appointments.FindBySlot(ctx, input.DoctorID, input.Date, input.Slot); err == nil {
		return nil, domain.ErrSlotUnavailable
	}

	now := time.Now().UTC()
	appointment, err := s.appointments.Create(ctx, &domain.Appointment{
		DoctorID:       input.DoctorID,
		PatientID:      input.PatientID,
		Date:           input.Date,
		Slot:           input.Slot,
		Status:         domain.StatusScheduled,
		Notes:          input.Notes,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusScheduled, Timestamp: now},
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", input.DoctorID).Msg("failed to book appointment")
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("doctor_id", input.DoctorID).
		Str("slot", input.Slot).
		Msg("appointment booked")

	return &ports.BookAppointmentResult{
		AppointmentID: appointment.ID,
		Status:        string(appointment.Status),
		CreatedAt:     appointment.CreatedAt,
	}, nil
}

// Reschedule moves a scheduled appointment to a new date/slot. Only
// the owning patient may reschedule, and only before check-in.
func (s *AppointmentService) Reschedule(ctx context.Context, input ports.RescheduleInput) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != input.PatientID {
		return nil, domain.ErrForbidden
	}
	if appointment.Status != domain.StatusScheduled {
		return nil, domain.ErrInvalidTransition
	}

	doctor, err := s.doctors.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if !slotConfigured(doctor, input.Slot) {
		return nil, domain.ErrSlotUnavailable
	}
	if taken, err := s.appointments.FindBySlot(ctx, appointment.DoctorID, input.Date, input.Slot); err == nil && taken.ID != appointment.ID {
		return nil, domain.ErrSlotUnavailable
	}

	appointment.Date = input.Date
	appointment.Slot = input.Slot
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, patientID string) error {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.PatientID != patientID {
		return domain.ErrForbidden
	}
	if !appointment.Status.CanTransitionTo(domain.StatusCancelled) {
		return domain.ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.StatusCancelled, time.Now().UTC(), "patient"); err != nil {
		return err
	}
	s.logger.Info().Str("appointment_id", appointmentID).Msg("appointment cancelled")
	return nil
}

func (s *AppointmentService) ForDoctor(ctx context.Context, doctorID, date, patientName string) ([]*domain.Appointment, error) {
	appointments, err := s.appointments.List(ctx, ports.AppointmentFilter{DoctorID: doctorID, Date: date})
	if err != nil {
		return nil, err
	}
	if patientName == "" {
		return appointments, nil
	}

	// Patient names live on the patient record, not the appointment;
	// resolve each referenced patient once and match in memory. Day
	// schedules are small so the extra lookups stay bounded.
	needle := strings.ToLower(patientName)
	names := make(map[string]string)
	filtered := appointments[:0]
	for _, a := range appointments {
		name, seen := names[a.PatientID]
		if !seen {
			patient, err := s.patients.FindByID(ctx, a.PatientID)
			if err == nil {
				name = patient.Name
			}
			names[a.PatientID] = name
		}
		if strings.Contains(strings.ToLower(name), needle) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func slotConfigured(doctor *domain.Doctor, slot string) bool {
	for _, s := range doctor.AvailableTimes {
		if s == slot {
			return true
		}
	}
	return false
}
