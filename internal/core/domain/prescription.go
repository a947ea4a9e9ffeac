package domain

import "time"

// Medication is one prescribed drug with its dosage instructions.
type Medication struct {
	Name         string `json:"name" bson:"name"`
	Dosage       string `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty" bson:"frequency,omitempty"`
	DurationDays int    `json:"duration_days,omitempty" bson:"duration_days,omitempty"`
}

// Prescription is the set of medications a doctor issued for one
// appointment. PatientName is denormalised from the patient record at
// issue time so the document stays readable after the appointment.
type Prescription struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	AppointmentID string       `json:"appointment_id" bson:"appointment_id"`
	DoctorID      string       `json:"doctor_id" bson:"doctor_id"`
	PatientName   string       `json:"patient_name" bson:"patient_name"`
	Medications   []Medication `json:"medications" bson:"medications"`
	Notes         string       `json:"notes,omitempty" bson:"doctor_notes,omitempty"`
	Active        bool         `json:"active" bson:"is_active"`
	CreatedAt     time.Time    `json:"created_at" bson:"creation_date"`
}
