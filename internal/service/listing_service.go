package service

import (
	"context"
	"mime/multipart"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
)

// ListingService manages catalogue listings. New listings are gated by the
// flash-sale cutoff.
type ListingService struct {
	*ResourceService
	flashSales *FlashSaleService
	uploads    *upload.Orchestrator
}

// ListingDependencies bundles collaborators.
type ListingDependencies struct {
	ListingRepo repository.ListingRepository
	FlashSales  *FlashSaleService
	Uploads     *upload.Orchestrator
	Dispatcher  events.Dispatcher
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	return &ListingService{
		ResourceService: NewResourceService(domain.KindListing, deps.ListingRepo, deps.Dispatcher),
		flashSales:      deps.FlashSales,
		uploads:         deps.Uploads,
	}
}

// CreateListingInput describes listing creation.
type CreateListingInput struct {
	Status domain.Status
	Attrs  map[string]any
	Images []*multipart.FileHeader
}

var listingImagesRule = upload.Rule{Field: "images", MinCount: 1, MaxCount: 6, MimePrefix: "image/"}

// CreateListing validates input, enforces the flash-sale cutoff, uploads the
// gallery images in request order, and writes the document. Images already
// uploaded are not removed when the document insert fails.
func (s *ListingService) CreateListing(ctx context.Context, callerID string, input CreateListingInput) (*domain.Resource, error) {
	if err := s.uploads.Validate(input.Images, listingImagesRule); err != nil {
		return nil, err
	}
	if err := s.flashSales.EnforceCutoff(ctx, callerID); err != nil {
		return nil, err
	}

	urls, err := s.uploads.Store(ctx, "listings/"+callerID, input.Images)
	if err != nil {
		return nil, err
	}
	attrs := input.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrs["images"] = urls

	return s.Create(ctx, callerID, input.Status, attrs)
}
