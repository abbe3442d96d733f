package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// resourceCRUD implements the endpoints every owned document repeats:
// list, get, partial update, delete.
type resourceCRUD struct {
	svc *service.ResourceService
}

// List GET /<collection>.
func (h resourceCRUD) List(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	resources, err := h.svc.List(c.Context(), caller, statusFilter(c))
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewResourceResponses(resources))
}

// Get GET /<collection>/:id.
func (h resourceCRUD) Get(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := requiredParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.svc.Get(c.Context(), caller, id)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewResourceResponse(res))
}

// Update PATCH /<collection>/:id.
func (h resourceCRUD) Update(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := requiredParam(c, "id")
	if err != nil {
		return err
	}
	var patch map[string]any
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(patch) == 0 {
		return apperrors.NewValidationError("empty patch", nil)
	}
	res, err := h.svc.Update(c.Context(), caller, id, patch)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewResourceResponse(res))
}

// Delete DELETE /<collection>/:id.
func (h resourceCRUD) Delete(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := requiredParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), caller, id); err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, fiber.Map{"deleted": id})
}
