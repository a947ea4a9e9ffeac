package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCheckedIn AppointmentStatus = "checked_in"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status
// to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusHistoryEntry records a single status change on an appointment.
type StatusHistoryEntry struct {
	Status    AppointmentStatus `json:"status" bson:"status"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Appointment is the booking aggregate root. Slot is one of the
// doctor's opaque slot labels; Date fixes the calendar day the slot
// applies to.
type Appointment struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	DoctorID       string               `json:"doctor_id" bson:"doctor_id"`
	PatientID      string               `json:"patient_id" bson:"patient_id"`
	Date           string               `json:"date" bson:"date"` // YYYY-MM-DD
	Slot           string               `json:"slot" bson:"slot"`
	Status         AppointmentStatus    `json:"status" bson:"status"`
	Notes          string               `json:"notes,omitempty" bson:"notes,omitempty"`
	IdempotencyKey string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// AppointmentEvent represents a status update received from an
// external source (front desk app, practitioner console).
type AppointmentEvent struct {
	AppointmentID string
	Status        AppointmentStatus
	Timestamp     time.Time
	Source        string
	Notes         string
}
