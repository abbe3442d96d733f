package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/auth"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// okJSON writes the success envelope. Every response body carries the ok
// discriminator; failures are produced by the error middleware.
func okJSON(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"ok": true, "data": data})
}

// callerID resolves the authenticated subject id. The token itself never
// travels further than the auth middleware; everything downstream receives
// the id explicitly.
func callerID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.SubjectID() == "" {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return principal.SubjectID(), nil
}

// requiredParam fetches a path parameter or fails with a validation error.
func requiredParam(c *fiber.Ctx, name string) (string, error) {
	val := c.Params(name)
	if val == "" {
		return "", apperrors.NewValidationError(name+" is required", nil)
	}
	return val, nil
}

// statusFilter parses the optional ?status= query value.
func statusFilter(c *fiber.Ctx) *domain.Status {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status := domain.Status(raw)
	return &status
}

// reserved multipart fields that never land in document attrs.
var reservedFormFields = map[string]struct{}{
	"status":    {},
	"locations": {},
}

// formAttrs collects the plain form values of a multipart request into a
// document attrs map. Repeated fields keep every value.
func formAttrs(form *multipart.Form) map[string]any {
	attrs := map[string]any{}
	if form == nil {
		return attrs
	}
	for key, values := range form.Value {
		if _, skip := reservedFormFields[key]; skip {
			continue
		}
		if len(values) == 1 {
			attrs[key] = values[0]
		} else if len(values) > 1 {
			attrs[key] = values
		}
	}
	return attrs
}

// formStatus reads the requested initial status from a multipart form.
func formStatus(form *multipart.Form) domain.Status {
	if form == nil {
		return ""
	}
	values := form.Value["status"]
	if len(values) == 0 {
		return ""
	}
	return domain.Status(values[0])
}
