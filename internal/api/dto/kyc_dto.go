package dto

import "github.com/rijan-rayamajhi/gem-business/internal/domain"

// KYCLocationRequest is one location in a submission. The locations arrive
// as a JSON array in the multipart "locations" field.
type KYCLocationRequest struct {
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToDomain converts the request location.
func (r KYCLocationRequest) ToDomain() domain.KYCLocation {
	return domain.KYCLocation{
		Label:     r.Label,
		Address:   r.Address,
		City:      r.City,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// KYCLocationResponse is the wire view of a location.
type KYCLocationResponse struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// KYCResponse bundles the record and its locations.
type KYCResponse struct {
	Record    ResourceResponse      `json:"record"`
	Locations []KYCLocationResponse `json:"locations"`
}

// NewKYCResponse maps a record with locations.
func NewKYCResponse(record *domain.Resource, locations []domain.KYCLocation) KYCResponse {
	locs := make([]KYCLocationResponse, 0, len(locations))
	for _, loc := range locations {
		locs = append(locs, KYCLocationResponse{
			ID:        loc.ID,
			Label:     loc.Label,
			Address:   loc.Address,
			City:      loc.City,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}
	return KYCResponse{Record: NewResourceResponse(record), Locations: locs}
}
