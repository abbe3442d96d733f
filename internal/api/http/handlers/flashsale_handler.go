package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
)

// FlashSaleHandler surfaces flash-sale campaigns.
type FlashSaleHandler struct {
	flashSales *service.FlashSaleService
}

// NewFlashSaleHandler constructs handler.
func NewFlashSaleHandler(flashSales *service.FlashSaleService) *FlashSaleHandler {
	return &FlashSaleHandler{flashSales: flashSales}
}

// Current GET /flash-sales/current returns the campaign applying right now.
func (h *FlashSaleHandler) Current(c *fiber.Ctx) error {
	if _, err := callerID(c); err != nil {
		return err
	}
	campaign, err := h.flashSales.ActiveCampaign(c.Context())
	if err != nil {
		return err
	}
	if campaign == nil {
		return okJSON(c, http.StatusOK, nil)
	}
	return okJSON(c, http.StatusOK, dto.NewCampaignResponse(campaign))
}

// List GET /flash-sales returns every campaign document, newest first.
func (h *FlashSaleHandler) List(c *fiber.Ctx) error {
	if _, err := callerID(c); err != nil {
		return err
	}
	campaigns, err := h.flashSales.ListCampaigns(c.Context())
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewCampaignResponses(campaigns))
}
