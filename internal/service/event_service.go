package service

import (
	"context"
	"mime/multipart"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
)

// EventService manages ticketed events. Ticketing fields (price, capacity,
// venue, schedule) live in the document attrs like any other type-specific
// field.
type EventService struct {
	*ResourceService
	uploads *upload.Orchestrator
}

// EventDependencies bundles collaborators.
type EventDependencies struct {
	EventRepo  repository.EventRepository
	Uploads    *upload.Orchestrator
	Dispatcher events.Dispatcher
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		ResourceService: NewResourceService(domain.KindEvent, deps.EventRepo, deps.Dispatcher),
		uploads:         deps.Uploads,
	}
}

// CreateEventInput describes event creation.
type CreateEventInput struct {
	Status domain.Status
	Attrs  map[string]any
	Banner []*multipart.FileHeader
	Promo  []*multipart.FileHeader
}

var (
	eventBannerRule = upload.Rule{Field: "banner", MinCount: 1, MaxCount: 4, MimePrefix: "image/"}
	eventPromoRule  = upload.Rule{Field: "promo", MinCount: 0, MaxCount: 1, MimePrefix: "video/"}
)

// CreateEvent validates all file slots before storing anything, then uploads
// banner images and the optional promo video sequentially, in request order.
func (s *EventService) CreateEvent(ctx context.Context, callerID string, input CreateEventInput) (*domain.Resource, error) {
	if err := s.uploads.Validate(input.Banner, eventBannerRule); err != nil {
		return nil, err
	}
	if err := s.uploads.Validate(input.Promo, eventPromoRule); err != nil {
		return nil, err
	}

	attrs := input.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}

	urls, err := s.uploads.Store(ctx, "events/"+callerID, input.Banner)
	if err != nil {
		return nil, err
	}
	attrs["bannerImages"] = urls

	if len(input.Promo) > 0 {
		promoURLs, err := s.uploads.Store(ctx, "events/"+callerID, input.Promo)
		if err != nil {
			return nil, err
		}
		attrs["promoVideoUrl"] = promoURLs[0]
	}

	return s.Create(ctx, callerID, input.Status, attrs)
}
