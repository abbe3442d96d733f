package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/lifecycle"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// KYCService manages KYC submissions: one record per business, keyed by the
// owner id. The submission writes the record, its locations and the business
// status flip in a single atomic batch.
type KYCService struct {
	kyc        repository.KYCRepository
	businesses repository.BusinessRepository
	uploads    *upload.Orchestrator
	dispatcher events.Dispatcher
	now        func() time.Time
}

// KYCDependencies bundles collaborators.
type KYCDependencies struct {
	KYCRepo      repository.KYCRepository
	BusinessRepo repository.BusinessRepository
	Uploads      *upload.Orchestrator
	Dispatcher   events.Dispatcher
}

// NewKYCService constructs the service.
func NewKYCService(deps KYCDependencies) *KYCService {
	return &KYCService{
		kyc:        deps.KYCRepo,
		businesses: deps.BusinessRepo,
		uploads:    deps.Uploads,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// SubmitKYCInput describes a submission.
type SubmitKYCInput struct {
	Attrs     map[string]any
	Locations []domain.KYCLocation
	Documents []*multipart.FileHeader
}

var kycDocumentsRule = upload.Rule{Field: "documents", MinCount: 1, MaxCount: 5, MimePrefix: "image/"}

// Submit files (or refiles after rejection) the caller's KYC. A submission
// while the record is pending or verified is a conflict. Document uploads
// run before the batch write; a failed batch can leave the uploads behind.
func (s *KYCService) Submit(ctx context.Context, callerID string, input SubmitKYCInput) (*domain.Resource, error) {
	if _, err := s.businesses.GetByOwner(ctx, callerID); err != nil {
		if repository.IsNoRows(err) {
			return nil, apperrors.NewNotFound("business", nil)
		}
		return nil, apperrors.MapError(err)
	}

	existing, err := s.kyc.GetByOwner(ctx, callerID)
	if err != nil && !repository.IsNoRows(err) {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		policy := lifecycle.PolicyFor(domain.KindKYC)
		if policy.IsLocked(existing.Status) {
			return nil, apperrors.NewConflict("kyc cannot be resubmitted while "+string(existing.Status), nil)
		}
	}

	if err := s.uploads.Validate(input.Documents, kycDocumentsRule); err != nil {
		return nil, err
	}
	if len(input.Locations) == 0 {
		return nil, apperrors.NewValidationError("at least one location is required", nil)
	}

	urls, err := s.uploads.Store(ctx, "kyc/"+callerID, input.Documents)
	if err != nil {
		return nil, err
	}
	attrs := input.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrs["documentUrls"] = urls

	record, err := lifecycle.NewResource(domain.KindKYC, callerID, callerID, domain.StatusPending, attrs, s.now())
	if err != nil {
		return nil, err
	}
	locations := make([]domain.KYCLocation, len(input.Locations))
	for i, loc := range input.Locations {
		loc.ID = uuid.NewString()
		loc.OwnerID = callerID
		locations[i] = loc
	}

	if err := s.kyc.SubmitBatch(ctx, &domain.KYCSubmission{Record: record, Locations: locations}); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:           uuid.NewString(),
			Type:         events.EventKYCSubmitted,
			ResourceKind: domain.KindKYC,
			ResourceID:   record.ID,
			OwnerID:      callerID,
			Timestamp:    s.now(),
		})
	}
	return record, nil
}

// Get returns the caller's KYC record with its locations.
func (s *KYCService) Get(ctx context.Context, callerID string) (*domain.Resource, []domain.KYCLocation, error) {
	record, err := s.kyc.GetByOwner(ctx, callerID)
	if err != nil {
		if repository.IsNoRows(err) {
			record = nil
		} else {
			return nil, nil, apperrors.MapError(err)
		}
	}
	if err := lifecycle.Authorize(record, callerID, lifecycle.OpRead); err != nil {
		return nil, nil, err
	}
	locations, err := s.kyc.ListLocations(ctx, callerID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return record, locations, nil
}
