package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// MerchantsHandler exposes account endpoints.
type MerchantsHandler struct {
	merchants *service.MerchantService
}

// NewMerchantsHandler constructs handler.
func NewMerchantsHandler(merchants *service.MerchantService) *MerchantsHandler {
	return &MerchantsHandler{merchants: merchants}
}

// Register handles POST /auth/register.
func (h *MerchantsHandler) Register(c *fiber.Ctx) error {
	var req dto.MerchantRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	merchant, token, expiresAt, err := h.merchants.Register(c.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusCreated, fiber.Map{
		"merchant": merchantResponse(merchant),
		"auth":     dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// Login handles POST /auth/login.
func (h *MerchantsHandler) Login(c *fiber.Ctx) error {
	var req dto.MerchantLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	merchant, token, expiresAt, err := h.merchants.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, fiber.Map{
		"merchant": merchantResponse(merchant),
		"auth":     dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

func merchantResponse(merchant *domain.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:    merchant.ID,
		Name:  merchant.Name,
		Email: merchant.Email,
		Phone: merchant.Phone,
	}
}
