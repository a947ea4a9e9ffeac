package handler

import (
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

type bookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot     string `json:"slot" validate:"required"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

type bookAppointmentResponse struct {
	AppointmentID string    `json:"appointment_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toBookResponse(result *ports.BookAppointmentResult) bookAppointmentResponse {
	return bookAppointmentResponse{
		AppointmentID: result.AppointmentID,
		Status:        result.Status,
		CreatedAt:     result.CreatedAt,
	}
}

type rescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot string `json:"slot" validate:"required"`
}

type statusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type appointmentResponse struct {
	ID            string               `json:"id"`
	DoctorID      string               `json:"doctor_id"`
	PatientID     string               `json:"patient_id"`
	Date          string               `json:"date"`
	Slot          string               `json:"slot"`
	Status        string               `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	StatusHistory []statusHistoryEntry `json:"status_history,omitempty"`
}

type listAppointmentsResponse struct {
	Appointments []appointmentResponse `json:"appointments"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	history := make([]statusHistoryEntry, 0, len(a.StatusHistory))
	for _, entry := range a.StatusHistory {
		history = append(history, statusHistoryEntry{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp,
			Notes:     entry.Notes,
		})
	}
	return appointmentResponse{
		ID:            a.ID,
		DoctorID:      a.DoctorID,
		PatientID:     a.PatientID,
		Date:          a.Date,
		Slot:          a.Slot,
		Status:        string(a.Status),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		StatusHistory: history,
	}
}

type appointmentEventRequest struct {
	AppointmentID string    `json:"appointment_id" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=scheduled checked_in completed cancelled no_show"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
	Source        string    `json:"source" validate:"required"`
	Notes         string    `json:"notes" validate:"omitempty,max=500"`
}

func (r appointmentEventRequest) toInput() ports.AppointmentEventInput {
	return ports.AppointmentEventInput{
		AppointmentID: r.AppointmentID,
		Status:        r.Status,
		Timestamp:     r.Timestamp,
		Source:        r.Source,
		Notes:         r.Notes,
	}
}

type batchEventRequest struct {
	Events []appointmentEventRequest `json:"events" validate:"required,min=1,max=100,dive"`
}

type eventAcceptedResponse struct {
	Accepted int `json:"accepted"`
}
