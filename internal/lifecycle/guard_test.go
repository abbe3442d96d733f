package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

func listingOwnedBy(owner string, status domain.Status) *domain.Resource {
	return &domain.Resource{
		ID:      "listing-1",
		Kind:    domain.KindListing,
		OwnerID: owner,
		Status:  status,
		Attrs:   map[string]any{"title": "Gold Ring", "description": "22k"},
	}
}

func TestAuthorize_MissingResource(t *testing.T) {
	err := Authorize(nil, "merchant-a", OpRead)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_OwnershipCheckedForEveryOperation(t *testing.T) {
	res := listingOwnedBy("merchant-a", domain.StatusDraft)

	for _, op := range []Operation{OpRead, OpUpdate, OpDelete} {
		err := Authorize(res, "merchant-b", op)
		require.Error(t, err, "op %s", op)
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus, "op %s", op)
	}
}

func TestAuthorize_OwnershipMismatchRegardlessOfStatus(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusDraft, domain.StatusPending, domain.StatusVerified, domain.StatusRejected} {
		res := listingOwnedBy("merchant-a", status)
		err := Authorize(res, "merchant-b", OpUpdate)
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus, "status %s", status)
	}
}

func TestAuthorize_EmptyOwnerIsForbidden(t *testing.T) {
	res := listingOwnedBy("", domain.StatusDraft)
	err := Authorize(res, "", OpRead)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_LockedStatusRefusesMutation(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusVerified} {
		res := listingOwnedBy("merchant-a", status)

		err := Authorize(res, "merchant-a", OpUpdate)
		require.Error(t, err, "update at %s", status)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)

		err = Authorize(res, "merchant-a", OpDelete)
		require.Error(t, err, "delete at %s", status)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)

		// read still succeeds while locked
		assert.NoError(t, Authorize(res, "merchant-a", OpRead))
	}
}

func TestAuthorize_UnlockedStatusAllowsMutation(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusDraft, domain.StatusRejected} {
		res := listingOwnedBy("merchant-a", status)
		assert.NoError(t, Authorize(res, "merchant-a", OpUpdate), "status %s", status)
		assert.NoError(t, Authorize(res, "merchant-a", OpDelete), "status %s", status)
	}
}

func TestAuthorize_BusinessLockedAtSubmitted(t *testing.T) {
	res := &domain.Resource{
		ID: "biz-1", Kind: domain.KindBusiness, OwnerID: "merchant-a", Status: domain.StatusSubmitted,
	}
	err := Authorize(res, "merchant-a", OpUpdate)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_Idempotent(t *testing.T) {
	res := listingOwnedBy("merchant-a", domain.StatusVerified)

	first := Authorize(res, "merchant-a", OpUpdate)
	second := Authorize(res, "merchant-a", OpUpdate)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
	// the read-only check did not mutate the resource
	assert.Equal(t, domain.StatusVerified, res.Status)
	assert.Equal(t, "merchant-a", res.OwnerID)
}

func TestValidatePatch_UnknownStatusRejected(t *testing.T) {
	_, err := ValidatePatch(domain.KindListing, map[string]any{"status": "archived", "title": "x"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestValidatePatch_NonStringStatusRejected(t *testing.T) {
	_, err := ValidatePatch(domain.KindListing, map[string]any{"status": 7})
	require.Error(t, err)
}

func TestValidatePatch_SubmittedNotAListingStatus(t *testing.T) {
	_, err := ValidatePatch(domain.KindListing, map[string]any{"status": "submitted"})
	require.Error(t, err)

	status, err := ValidatePatch(domain.KindBusiness, map[string]any{"status": "submitted"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, status)
}

func TestApplyPatch_PartialUpdateIsolation(t *testing.T) {
	res := listingOwnedBy("merchant-a", domain.StatusDraft)
	createdAt := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	res.CreatedAt = createdAt
	res.UpdatedAt = createdAt

	now := createdAt.Add(time.Hour)
	require.NoError(t, ApplyPatch(res, map[string]any{"description": "sapphire"}, now))

	assert.Equal(t, "sapphire", res.Attrs["description"])
	assert.Equal(t, "Gold Ring", res.Attrs["title"])
	assert.Equal(t, domain.StatusDraft, res.Status)
	assert.Equal(t, createdAt, res.CreatedAt)
	assert.Equal(t, now, res.UpdatedAt)
}

func TestApplyPatch_BadStatusLeavesEverythingUntouched(t *testing.T) {
	res := listingOwnedBy("merchant-a", domain.StatusDraft)
	original := res.Attrs["title"]

	err := ApplyPatch(res, map[string]any{"status": "bogus", "title": "changed"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, domain.StatusDraft, res.Status)
	assert.Equal(t, original, res.Attrs["title"])
}

func TestApplyPatch_ServerOwnedFieldsDropped(t *testing.T) {
	res := listingOwnedBy("merchant-a", domain.StatusDraft)
	now := time.Now()

	require.NoError(t, ApplyPatch(res, map[string]any{"ownerId": "merchant-b", "createdAt": "2020-01-01"}, now))
	assert.Equal(t, "merchant-a", res.OwnerID)
	_, leaked := res.Attrs["ownerId"]
	assert.False(t, leaked)
}

func TestNewResource_OwnerFromCaller(t *testing.T) {
	res, err := NewResource(domain.KindListing, "id-1", "merchant-a", "", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "merchant-a", res.OwnerID)
	assert.Equal(t, domain.StatusDraft, res.Status)
	assert.Equal(t, res.CreatedAt, res.UpdatedAt)
}

func TestNewResource_RequestedStatusMustBeCreatable(t *testing.T) {
	_, err := NewResource(domain.KindListing, "id-1", "merchant-a", domain.StatusVerified, nil, time.Now())
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	res, err := NewResource(domain.KindListing, "id-2", "merchant-a", domain.StatusPending, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, res.Status)
}

func TestPolicy_KYCVocabulary(t *testing.T) {
	policy := PolicyFor(domain.KindKYC)
	assert.True(t, policy.Recognizes(domain.StatusPending))
	assert.False(t, policy.Recognizes(domain.StatusDraft))
	assert.True(t, policy.IsLocked(domain.StatusPending))
	assert.True(t, policy.IsLocked(domain.StatusVerified))
	assert.False(t, policy.IsLocked(domain.StatusRejected))
}
