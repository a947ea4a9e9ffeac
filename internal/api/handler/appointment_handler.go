package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/api/metrics"
	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Book creates an appointment for the authenticated patient.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Idempotency key"
// @Param        body             body      bookAppointmentRequest  true   "Booking details"
// @Success      201              {object}  bookAppointmentResponse
// @Success      200              {object}  bookAppointmentResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Book(c.Request().Context(), ports.BookAppointmentInput{
		DoctorID:       req.DoctorID,
		PatientID:      subjectID,
		Date:           req.Date,
		Slot:           req.Slot,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.AppointmentsBookedTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		metrics.AppointmentsBookedTotal.WithLabelValues("replayed").Inc()
		status = http.StatusOK
	} else {
		metrics.AppointmentsBookedTotal.WithLabelValues("created").Inc()
	}
	return c.JSON(status, toBookResponse(result))
}

// Reschedule moves an appointment to a new date/slot.
//
// @Summary      Reschedule an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Appointment ID"
// @Param        body  body      rescheduleRequest  true  "New date and slot"
// @Success      200   {object}  appointmentResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /appointments/{id} [put]
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	appointment, err := h.service.Reschedule(c.Request().Context(), ports.RescheduleInput{
		AppointmentID: c.Param("id"),
		PatientID:     subjectID,
		Date:          req.Date,
		Slot:          req.Slot,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

// Cancel cancels the authenticated patient's appointment.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Appointment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), c.Param("id"), subjectID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ForDoctor lists the authenticated doctor's schedule for a day.
//
// @Summary      Doctor's appointments for a date
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        date     query     string  true   "Date (YYYY-MM-DD)"
// @Param        patient  query     string  false  "Partial patient name"
// @Success      200      {object}  listAppointmentsResponse
// @Failure      401      {object}  errorResponse
// @Router       /appointments [get]
func (h *AppointmentHandler) ForDoctor(c echo.Context) error {
	_, subjectID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	appointments, err := h.service.ForDoctor(c.Request().Context(), subjectID, date, c.QueryParam("patient"))
	if err != nil {
		return err
	}

	items := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, toAppointmentResponse(a))
	}
	return c.JSON(http.StatusOK, listAppointmentsResponse{Appointments: items})
}
