package lifecycle

import (
	"fmt"
	"time"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

// Operation is the kind of access being attempted on a resource.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Authorize decides whether callerID may perform op on res. It is pure: a
// repeated call with the same inputs yields the same decision.
//
// Decision order: missing resource, then ownership (checked even for reads,
// resources are private to their owner), then the locked-status rule for
// mutations.
func Authorize(res *domain.Resource, callerID string, op Operation) error {
	if res == nil {
		return apperrors.NewNotFound(string(resourceName(res)), nil)
	}
	if res.OwnerID == "" || res.OwnerID != callerID {
		return apperrors.NewForbidden("you do not have access to this " + string(res.Kind))
	}
	if op == OpUpdate || op == OpDelete {
		policy := PolicyFor(res.Kind)
		if policy.IsLocked(res.Status) {
			return apperrors.NewConflict(
				fmt.Sprintf("%s cannot be edited or deleted while %s", res.Kind, res.Status), nil)
		}
	}
	return nil
}

func resourceName(res *domain.Resource) domain.Kind {
	if res == nil {
		return "resource"
	}
	return res.Kind
}

// NewResource builds a freshly created resource. OwnerID always comes from
// the authenticated caller, never from client input. The requested status
// must be one the kind allows at creation; empty means the kind's default.
func NewResource(kind domain.Kind, id, ownerID string, requested domain.Status, attrs map[string]any, now time.Time) (*domain.Resource, error) {
	policy := PolicyFor(kind)
	status := requested
	if status == "" {
		status = policy.Initial
	}
	if !policy.CreatableWith(status) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("status %q is not allowed for a new %s", status, kind), nil)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &domain.Resource{
		ID:        id,
		Kind:      kind,
		OwnerID:   ownerID,
		Status:    status,
		Attrs:     attrs,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidatePatch checks a partial update before anything is written. A patch
// carrying an unrecognized status value rejects the whole update; no other
// field of the patch is applied in that case. The returned status is the
// parsed value when present, or "" when the patch leaves status alone.
func ValidatePatch(kind domain.Kind, patch map[string]any) (domain.Status, error) {
	raw, present := patch["status"]
	if !present {
		return "", nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", apperrors.NewValidationError("status must be a string", nil)
	}
	status := domain.Status(str)
	if !PolicyFor(kind).Recognizes(status) {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("unknown status %q for %s", str, kind), nil)
	}
	return status, nil
}

// ApplyPatch merges a validated patch into res in place: only fields present
// in the patch change, updatedAt is always refreshed, createdAt and ownerId
// never change. The repository performs the equivalent merge at the store;
// this is the in-memory counterpart used by services and test fakes.
func ApplyPatch(res *domain.Resource, patch map[string]any, now time.Time) error {
	status, err := ValidatePatch(res.Kind, patch)
	if err != nil {
		return err
	}
	if res.Attrs == nil {
		res.Attrs = map[string]any{}
	}
	for key, value := range patch {
		switch key {
		case "status":
			res.Status = status
		case "ownerId", "createdAt", "updatedAt":
			// server-owned fields, silently dropped from patches
		default:
			res.Attrs[key] = value
		}
	}
	res.UpdatedAt = now
	return nil
}
