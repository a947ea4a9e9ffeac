package handler

import (
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

type medicationRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=100"`
	Dosage       string `json:"dosage" validate:"omitempty,max=50"`
	Frequency    string `json:"frequency" validate:"omitempty,max=50"`
	DurationDays int    `json:"duration_days" validate:"omitempty,min=1"`
}

type savePrescriptionRequest struct {
	AppointmentID string              `json:"appointment_id" validate:"required"`
	Medications   []medicationRequest `json:"medications" validate:"required,min=1,dive"`
	Notes         string              `json:"notes" validate:"omitempty,max=500"`
}

func (r savePrescriptionRequest) medicationList() []domain.Medication {
	medications := make([]domain.Medication, 0, len(r.Medications))
	for _, m := range r.Medications {
		medications = append(medications, domain.Medication{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			DurationDays: m.DurationDays,
		})
	}
	return medications
}

type medicationResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	DurationDays int    `json:"duration_days,omitempty"`
}

type prescriptionResponse struct {
	ID            string               `json:"id"`
	AppointmentID string               `json:"appointment_id"`
	DoctorID      string               `json:"doctor_id"`
	PatientName   string               `json:"patient_name"`
	Medications   []medicationResponse `json:"medications"`
	Notes         string               `json:"notes,omitempty"`
	Active        bool                 `json:"active"`
	CreatedAt     time.Time            `json:"created_at"`
}

type listPrescriptionsResponse struct {
	Prescriptions []prescriptionResponse `json:"prescriptions"`
}

func toPrescriptionResponse(p *domain.Prescription) prescriptionResponse {
	medications := make([]medicationResponse, 0, len(p.Medications))
	for _, m := range p.Medications {
		medications = append(medications, medicationResponse{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			DurationDays: m.DurationDays,
		})
	}
	return prescriptionResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		DoctorID:      p.DoctorID,
		PatientName:   p.PatientName,
		Medications:   medications,
		Notes:         p.Notes,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}
