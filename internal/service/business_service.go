package service

import (
	"context"
	"mime/multipart"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// BusinessService manages the merchant's business profile. Each merchant owns
// at most one profile.
type BusinessService struct {
	*ResourceService
	businesses repository.BusinessRepository
	uploads    *upload.Orchestrator
}

// BusinessDependencies bundles collaborators.
type BusinessDependencies struct {
	BusinessRepo repository.BusinessRepository
	Uploads      *upload.Orchestrator
	Dispatcher   events.Dispatcher
}

// NewBusinessService constructs the service.
func NewBusinessService(deps BusinessDependencies) *BusinessService {
	return &BusinessService{
		ResourceService: NewResourceService(domain.KindBusiness, deps.BusinessRepo, deps.Dispatcher),
		businesses:      deps.BusinessRepo,
		uploads:         deps.Uploads,
	}
}

// CreateBusinessInput describes profile creation.
type CreateBusinessInput struct {
	Status domain.Status
	Attrs  map[string]any
	Logo   []*multipart.FileHeader
}

var businessLogoRule = upload.Rule{Field: "logo", MinCount: 0, MaxCount: 1, MimePrefix: "image/"}

// Register creates the caller's business profile. A second registration for
// the same merchant is a conflict. File validation happens before any byte
// is stored; the logo upload happens before the document insert, so a failed
// insert can leave an orphaned object behind.
func (s *BusinessService) Register(ctx context.Context, callerID string, input CreateBusinessInput) (*domain.Resource, error) {
	if existing, err := s.businesses.GetByOwner(ctx, callerID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("business already registered for this account", nil)
	} else if err != nil && !repository.IsNoRows(err) {
		return nil, apperrors.MapError(err)
	}

	if err := s.uploads.Validate(input.Logo, businessLogoRule); err != nil {
		return nil, err
	}

	attrs := input.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	if len(input.Logo) > 0 {
		urls, err := s.uploads.Store(ctx, "businesses/"+callerID, input.Logo)
		if err != nil {
			return nil, err
		}
		attrs["logoUrl"] = urls[0]
	}

	return s.Create(ctx, callerID, input.Status, attrs)
}

// GetOwn returns the caller's profile without needing its id.
func (s *BusinessService) GetOwn(ctx context.Context, callerID string) (*domain.Resource, error) {
	business, err := s.businesses.GetByOwner(ctx, callerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperrors.NewNotFound("business", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return business, nil
}
