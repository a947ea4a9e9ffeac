package handler

import (
	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type saveDoctorRequest struct {
	Name           string   `json:"name"            validate:"required"`
	Specialty      string   `json:"specialty"       validate:"required"`
	Email          string   `json:"email"           validate:"required,email"`
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"available_times" validate:"required,min=1"`
}

func (r saveDoctorRequest) toInput() ports.SaveDoctorInput {
	return ports.SaveDoctorInput{
		Name:           r.Name,
		Specialty:      r.Specialty,
		Email:          r.Email,
		Phone:          r.Phone,
		AvailableTimes: r.AvailableTimes,
	}
}

// Response-only types owned by the transport layer. These are
// intentionally separate from domain types so the JSON contract is not
// coupled to internal service changes.

type doctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	AvailableTimes []string `json:"available_times"`
}

func toDoctorResponse(d *domain.Doctor) doctorResponse {
	return doctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialty:      d.Specialty,
		Email:          d.Email,
		Phone:          d.Phone,
		AvailableTimes: d.AvailableTimes,
	}
}

type listDoctorsResponse struct {
	Doctors []doctorResponse `json:"doctors"`
}

type availabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type patientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func toPatientResponse(p *domain.Patient) patientResponse {
	return patientResponse{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}
