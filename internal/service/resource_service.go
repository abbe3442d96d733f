package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/events"
	"github.com/rijan-rayamajhi/gem-business/internal/lifecycle"
	"github.com/rijan-rayamajhi/gem-business/internal/repository"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// ResourceService implements the operations every owned resource shares:
// create, list, get, partial update, delete, each guarded by the lifecycle
// rules. The ownership and lock decision is always made against a freshly
// fetched copy of the document.
type ResourceService struct {
	kind       domain.Kind
	repo       repository.DocumentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewResourceService constructs the shared core for one kind.
func NewResourceService(kind domain.Kind, repo repository.DocumentRepository, dispatcher events.Dispatcher) *ResourceService {
	return &ResourceService{kind: kind, repo: repo, dispatcher: dispatcher, now: time.Now}
}

// Create persists a new resource owned by callerID. The requested status must
// be creatable for the kind; empty selects the kind's default.
func (s *ResourceService) Create(ctx context.Context, callerID string, requested domain.Status, attrs map[string]any) (*domain.Resource, error) {
	res, err := lifecycle.NewResource(s.kind, uuid.NewString(), callerID, requested, attrs, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventResourceCreated, res, nil)
	return res, nil
}

// List returns the caller's resources, optionally filtered by status.
func (s *ResourceService) List(ctx context.Context, callerID string, status *domain.Status) ([]domain.Resource, error) {
	if status != nil && !lifecycle.PolicyFor(s.kind).Recognizes(*status) {
		return nil, apperrors.NewValidationError("unknown status filter", nil)
	}
	resources, err := s.repo.ListByOwner(ctx, callerID, status)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if resources == nil {
		resources = []domain.Resource{}
	}
	return resources, nil
}

// Get fetches one resource, enforcing ownership even for reads.
func (s *ResourceService) Get(ctx context.Context, callerID, id string) (*domain.Resource, error) {
	return s.fetchAuthorized(ctx, callerID, id, lifecycle.OpRead)
}

// Update applies a partial update. Fields absent from the patch stay
// untouched; a bad status value rejects the entire patch before any write.
func (s *ResourceService) Update(ctx context.Context, callerID, id string, patch map[string]any) (*domain.Resource, error) {
	current, err := s.fetchAuthorized(ctx, callerID, id, lifecycle.OpUpdate)
	if err != nil {
		return nil, err
	}
	status, err := lifecycle.ValidatePatch(s.kind, patch)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]any, len(patch))
	for key, value := range patch {
		switch key {
		case "status", "ownerId", "createdAt", "updatedAt":
			continue
		}
		attrs[key] = value
	}
	var statusArg *domain.Status
	if status != "" {
		statusArg = &status
	}

	updated, err := s.repo.Patch(ctx, id, attrs, statusArg)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventResourceUpdated, updated, nil)
	if status != "" && status != current.Status {
		s.publish(ctx, events.EventResourceStatusChanged, updated, events.StatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: status,
		})
	}
	return updated, nil
}

// Delete removes a resource while it is unlocked.
func (s *ResourceService) Delete(ctx context.Context, callerID, id string) error {
	res, err := s.fetchAuthorized(ctx, callerID, id, lifecycle.OpDelete)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventResourceDeleted, res, nil)
	return nil
}

// Kind returns the resource kind this service manages.
func (s *ResourceService) Kind() domain.Kind {
	return s.kind
}

func (s *ResourceService) fetchAuthorized(ctx context.Context, callerID, id string, op lifecycle.Operation) (*domain.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			res = nil
		} else {
			return nil, apperrors.MapError(err)
		}
	}
	if err := lifecycle.Authorize(res, callerID, op); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) publish(ctx context.Context, eventType events.EventType, res *domain.Resource, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		ResourceKind: res.Kind,
		ResourceID:   res.ID,
		OwnerID:      res.OwnerID,
		Payload:      payload,
		Timestamp:    s.now(),
	})
}
