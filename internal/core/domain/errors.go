package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorExists        = errors.New("doctor already exists")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("time slot unavailable")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("access forbidden")
)
