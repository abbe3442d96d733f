package dto

import (
	"time"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// ResourceResponse is the wire view of any owned document.
type ResourceResponse struct {
	ID        string         `json:"id"`
	Status    domain.Status  `json:"status"`
	Attrs     map[string]any `json:"attrs"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewResourceResponse maps a resource.
func NewResourceResponse(res *domain.Resource) ResourceResponse {
	attrs := res.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	return ResourceResponse{
		ID:        res.ID,
		Status:    res.Status,
		Attrs:     attrs,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

// NewResourceResponses maps a slice.
func NewResourceResponses(resources []domain.Resource) []ResourceResponse {
	items := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		items = append(items, NewResourceResponse(&resources[i]))
	}
	return items
}

// CreatedResponse reports the new document id and its resulting status.
type CreatedResponse struct {
	ID     string        `json:"id"`
	Status domain.Status `json:"status"`
}
