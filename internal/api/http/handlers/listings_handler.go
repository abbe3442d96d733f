package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// ListingsHandler manages catalogue listing endpoints.
type ListingsHandler struct {
	resourceCRUD
	listings *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listings *service.ListingService) *ListingsHandler {
	return &ListingsHandler{
		resourceCRUD: resourceCRUD{svc: listings.ResourceService},
		listings:     listings,
	}
}

// Create POST /listings (multipart: form fields + 1..6 images).
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	listing, err := h.listings.CreateListing(c.Context(), caller, service.CreateListingInput{
		Status: formStatus(form),
		Attrs:  formAttrs(form),
		Images: form.File["images"],
	})
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusCreated, dto.CreatedResponse{ID: listing.ID, Status: listing.Status})
}
