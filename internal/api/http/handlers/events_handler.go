package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// EventsHandler manages ticketed-event endpoints.
type EventsHandler struct {
	resourceCRUD
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{
		resourceCRUD: resourceCRUD{svc: events.ResourceService},
		events:       events,
	}
}

// Create POST /events (multipart: form fields + banner images + optional promo video).
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	event, err := h.events.CreateEvent(c.Context(), caller, service.CreateEventInput{
		Status: formStatus(form),
		Attrs:  formAttrs(form),
		Banner: form.File["banner"],
		Promo:  form.File["promo"],
	})
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusCreated, dto.CreatedResponse{ID: event.ID, Status: event.Status})
}
