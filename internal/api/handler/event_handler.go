package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// EventQueue accepts appointment status events for asynchronous
// processing. Satisfied by queue.Dispatcher.
type EventQueue interface {
	Enqueue(event ports.AppointmentEventInput)
	EnqueueBatch(events []ports.AppointmentEventInput)
}

// EventHandler receives appointment status events from external
// systems (front desk, practitioner consoles) and hands them to the
// dispatcher. Events are acknowledged with 202 before processing.
type EventHandler struct {
	queue EventQueue
}

func NewEventHandler(queue EventQueue) *EventHandler {
	return &EventHandler{queue: queue}
}

// Receive accepts a single appointment status event.
//
// @Summary      Submit an appointment status event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      appointmentEventRequest  true  "Status event"
// @Success      202   {object}  eventAcceptedResponse
// @Failure      422   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Receive(c echo.Context) error {
	var req appointmentEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.queue.Enqueue(req.toInput())
	return c.JSON(http.StatusAccepted, eventAcceptedResponse{Accepted: 1})
}

// ReceiveBatch accepts up to 100 appointment status events in one call.
//
// @Summary      Submit a batch of appointment status events
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      batchEventRequest  true  "Status events"
// @Success      202   {object}  eventAcceptedResponse
// @Failure      422   {object}  errorResponse
// @Router       /events/batch [post]
func (h *EventHandler) ReceiveBatch(c echo.Context) error {
	var req batchEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	events := make([]ports.AppointmentEventInput, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, e.toInput())
	}
	h.queue.EnqueueBatch(events)
	return c.JSON(http.StatusAccepted, eventAcceptedResponse{Accepted: len(events)})
}
