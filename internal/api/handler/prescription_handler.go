package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/api/metrics"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// PrescriptionHandler handles HTTP requests for prescription
// operations.
type PrescriptionHandler struct {
	service ports.PrescriptionService
}

func NewPrescriptionHandler(service ports.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// Save issues a prescription for one of the authenticated doctor's
// appointments.
//
// @Summary      Issue a prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      savePrescriptionRequest  true  "Prescription details"
// @Success      201   {object}  prescriptionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /prescriptions [post]
func (h *PrescriptionHandler) Save(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req savePrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	prescription, err := h.service.Save(c.Request().Context(), ports.SavePrescriptionInput{
		DoctorID:      subjectID,
		AppointmentID: req.AppointmentID,
		Medications:   req.medicationList(),
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.PrescriptionsIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, toPrescriptionResponse(prescription))
}

// ForAppointment lists the prescriptions issued for one of the
// authenticated doctor's appointments.
//
// @Summary      Prescriptions for an appointment
// @Tags         prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  listPrescriptionsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointments/{id}/prescriptions [get]
func (h *PrescriptionHandler) ForAppointment(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	prescriptions, err := h.service.ForAppointment(c.Request().Context(), subjectID, c.Param("id"))
	if err != nil {
		return err
	}

	items := make([]prescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		items = append(items, toPrescriptionResponse(p))
	}
	return c.JSON(http.StatusOK, listPrescriptionsResponse{Prescriptions: items})
}
