package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/api/metrics"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// DoctorHandler handles HTTP requests for doctor operations.
type DoctorHandler struct {
	service ports.DoctorService
}

func NewDoctorHandler(service ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// List returns doctors, optionally filtered by name, specialty, and
// AM/PM availability.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Param        name       query     string  false  "Partial name match"
// @Param        specialty  query     string  false  "Specialty"
// @Param        period     query     string  false  "am or pm"
// @Success      200        {object}  listDoctorsResponse
// @Router       /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.service.List(c.Request().Context(), ports.ListDoctorsInput{
		Name:      c.QueryParam("name"),
		Specialty: c.QueryParam("specialty"),
		Period:    c.QueryParam("period"),
	})
	if err != nil {
		return err
	}

	items := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, toDoctorResponse(d))
	}
	return c.JSON(http.StatusOK, listDoctorsResponse{Doctors: items})
}

// Get returns a single doctor by ID.
//
// @Summary      Get a doctor
// @Tags         doctors
// @Produce      json
// @Param        id   path      string  true  "Doctor ID"
// @Success      200  {object}  doctorResponse
// @Failure      404  {object}  errorResponse
// @Router       /doctors/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	doctor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDoctorResponse(doctor))
}

// Create adds a doctor (admin only).
//
// @Summary      Create a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveDoctorRequest  true  "Doctor details"
// @Success      201   {object}  doctorResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req saveDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doctor, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDoctorResponse(doctor))
}

// Update modifies a doctor (admin only).
//
// @Summary      Update a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Doctor ID"
// @Param        body  body      saveDoctorRequest  true  "Doctor details"
// @Success      200   {object}  doctorResponse
// @Failure      404   {object}  errorResponse
// @Router       /doctors/{id} [put]
func (h *DoctorHandler) Update(c echo.Context) error {
	var req saveDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doctor, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDoctorResponse(doctor))
}

// Delete removes a doctor (admin only).
//
// @Summary      Delete a doctor
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Doctor ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.DoctorsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Availability returns the doctor's free slots for a calendar day.
//
// @Summary      Doctor availability for a date
// @Tags         doctors
// @Produce      json
// @Param        id    path      string  true  "Doctor ID"
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  availabilityResponse
// @Failure      404   {object}  errorResponse
// @Router       /doctors/{id}/availability [get]
func (h *DoctorHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	slots, err := h.service.Availability(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Date: date, Slots: slots})
}
