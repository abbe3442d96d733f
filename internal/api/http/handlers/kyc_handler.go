package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rijan-rayamajhi/gem-business/internal/api/dto"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// KYCHandler manages KYC submission endpoints.
type KYCHandler struct {
	kyc *service.KYCService
}

// NewKYCHandler constructs handler.
func NewKYCHandler(kyc *service.KYCService) *KYCHandler {
	return &KYCHandler{kyc: kyc}
}

// Submit POST /kyc (multipart: fields + locations JSON + 1..5 document images).
func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	locations, err := parseLocations(form.Value["locations"])
	if err != nil {
		return err
	}

	record, err := h.kyc.Submit(c.Context(), caller, service.SubmitKYCInput{
		Attrs:     formAttrs(form),
		Locations: locations,
		Documents: form.File["documents"],
	})
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusCreated, dto.CreatedResponse{ID: record.ID, Status: record.Status})
}

// Get GET /kyc returns the caller's record and locations.
func (h *KYCHandler) Get(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	record, locations, err := h.kyc.Get(c.Context(), caller)
	if err != nil {
		return err
	}
	return okJSON(c, http.StatusOK, dto.NewKYCResponse(record, locations))
}

func parseLocations(values []string) ([]domain.KYCLocation, error) {
	if len(values) == 0 {
		return nil, apperrors.NewValidationError("locations required", nil)
	}
	var reqs []dto.KYCLocationRequest
	if err := json.Unmarshal([]byte(values[0]), &reqs); err != nil {
		return nil, apperrors.NewValidationError("locations must be a JSON array", nil)
	}
	locations := make([]domain.KYCLocation, 0, len(reqs))
	for _, req := range reqs {
		locations = append(locations, req.ToDomain())
	}
	return locations, nil
}
