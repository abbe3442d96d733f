package dto

import (
	"time"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// CampaignResponse is the wire view of a flash-sale campaign document.
type CampaignResponse struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Doc       map[string]any `json:"doc"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewCampaignResponse maps a campaign.
func NewCampaignResponse(campaign *domain.FlashSaleCampaign) CampaignResponse {
	doc := campaign.Doc
	if doc == nil {
		doc = map[string]any{}
	}
	return CampaignResponse{
		ID:        campaign.ID,
		Status:    campaign.Status,
		Doc:       doc,
		CreatedAt: campaign.CreatedAt,
		UpdatedAt: campaign.UpdatedAt,
	}
}

// NewCampaignResponses maps a slice.
func NewCampaignResponses(campaigns []domain.FlashSaleCampaign) []CampaignResponse {
	items := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, NewCampaignResponse(&campaigns[i]))
	}
	return items
}
