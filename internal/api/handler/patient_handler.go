package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient operations.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Me returns the authenticated patient's record.
//
// @Summary      Current patient record
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  patientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/me [get]
func (h *PatientHandler) Me(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	patient, err := h.service.Get(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(patient))
}

// Appointments returns the authenticated patient's appointment
// history, optionally filtered by condition (past/future) and partial
// doctor name.
//
// @Summary      Patient appointment history
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        condition  query     string  false  "past or future"
// @Param        doctor     query     string  false  "Partial doctor name"
// @Success      200        {object}  listAppointmentsResponse
// @Failure      401        {object}  errorResponse
// @Router       /patients/me/appointments [get]
func (h *PatientHandler) Appointments(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	appointments, err := h.service.Appointments(c.Request().Context(), ports.PatientAppointmentsInput{
		PatientID:  subjectID,
		Condition:  c.QueryParam("condition"),
		DoctorName: c.QueryParam("doctor"),
	})
	if err != nil {
		return err
	}

	items := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, toAppointmentResponse(a))
	}
	return c.JSON(http.StatusOK, listAppointmentsResponse{Appointments: items})
}
