package service

import (
	"context"
	"strings"
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// PatientService implements patient record retrieval and appointment
// history filtering.
type PatientService struct {
	patients     ports.PatientRepository
	appointments ports.AppointmentRepository
	doctors      ports.DoctorRepository
}

func NewPatientService(patients ports.PatientRepository, appointments ports.AppointmentRepository, doctors ports.DoctorRepository) *PatientService {
	return &PatientService{patients: patients, appointments: appointments, doctors: doctors}
}

func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.patients.FindByID(ctx, id)
}

// Appointments returns the patient's appointments, optionally filtered
// to past or future visits and by partial doctor name.
func (s *PatientService) Appointments(ctx context.Context, input ports.PatientAppointmentsInput) ([]*domain.Appointment, error) {
	appointments, err := s.appointments.List(ctx, ports.AppointmentFilter{PatientID: input.PatientID})
	if err != nil {
		return nil, err
	}

	condition := strings.ToLower(strings.TrimSpace(input.Condition))
	doctorName := strings.ToLower(strings.TrimSpace(input.DoctorName))
	if condition == "" && doctorName == "" {
		return appointments, nil
	}

	today := time.Now().UTC().Format("2006-01-02")
	names := make(map[string]string)

	filtered := appointments[:0]
	for _, a := range appointments {
		switch condition {
		case "past":
			if a.Date >= today {
				continue
			}
		case "future":
			if a.Date < today {
				continue
			}
		}
		if doctorName != "" {
			name, seen := names[a.DoctorID]
			if !seen {
				doctor, err := s.doctors.FindByID(ctx, a.DoctorID)
				if err == nil {
					name = doctor.Name
				}
				names[a.DoctorID] = name
			}
			if !strings.Contains(strings.ToLower(name), doctorName) {
				continue
			}
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}
