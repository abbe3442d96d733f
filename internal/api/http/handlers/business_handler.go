package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// BusinessHandler manages the merchant's business profile endpoints.
type BusinessHandler struct {
	resourceCRUD
	business *service.BusinessService
}

// NewBusinessHandler constructs handler.
func NewBusinessHandler(business *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		resourceCRUD: resourceCRUD{svc: business.ResourceService},
		business:     business,
	}
}

// Register POST /business (multipart: profile fields + optional logo).
func (h *BusinessHandler) Register(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	business, err := h.business.Register(c.Context(), caller, service.CreateBusinessInput{
		Status: formStatus(form),
		Attrs:  formAttrs(form),
		Logo:   form.File["logo"],
	})
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusCreated, dto.CreatedResponse{ID: business.ID, Status: business.Status})
}

// GetOwn GET /business returns the caller's profile without its id.
func (h *BusinessHandler) GetOwn(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	business, err := h.business.GetOwn(c.Context(), caller)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewResourceResponse(business))
}
