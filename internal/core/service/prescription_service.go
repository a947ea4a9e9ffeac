package service

import (
	"context"
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// PrescriptionService implements prescription issuance and retrieval,
// scoped to the doctor who owns the appointment.
type PrescriptionService struct {
	prescriptions ports.PrescriptionRepository
	appointments  ports.AppointmentRepository
	patients      ports.PatientRepository
}

func NewPrescriptionService(prescriptions ports.PrescriptionRepository, appointments ports.AppointmentRepository, patients ports.PatientRepository) *PrescriptionService {
	return &PrescriptionService{prescriptions: prescriptions, appointments: appointments, patients: patients}
}

// Save issues a prescription against an appointment. Only the doctor
// the appointment belongs to may issue one.
func (s *PrescriptionService) Save(ctx context.Context, input ports.SavePrescriptionInput) (*domain.Prescription, error) {
	appointment, err := s.appointments.FindByID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != input.DoctorID {
		return nil, domain.ErrForbidden
	}

	patient, err := s.patients.FindByID(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}

	return s.prescriptions.Create(ctx, &domain.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      input.DoctorID,
		PatientName:   patient.Name,
		Medications:   input.Medications,
		Notes:         input.Notes,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	})
}

// ForAppointment returns the prescriptions issued for an appointment,
// with the same ownership check as Save.
func (s *PrescriptionService) ForAppointment(ctx context.Context, doctorID, appointmentID string) ([]*domain.Prescription, error) {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, domain.ErrForbidden
	}
	return s.prescriptions.FindByAppointment(ctx, appointmentID)
}
