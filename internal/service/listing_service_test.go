package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
	apperrors "github.com/rijan-rayamajhi/gem-business/pkg/util"
)

func imageHeaders(t *testing.T, field string, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("img"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File[field]
}

type listingFixture struct {
	svc       *ListingService
	repo      *memDocRepo
	store     *memObjectStore
	campaigns *stubCampaignRepo
}

func newListingFixture(t *testing.T, now time.Time) *listingFixture {
	t.Helper()
	repo := newMemDocRepo()
	store := &memObjectStore{}
	campaigns := &stubCampaignRepo{}
	svc := NewListingService(ListingDependencies{
		ListingRepo: repo,
		FlashSales:  newFlashSaleService(campaigns, true, now),
		Uploads:     upload.NewOrchestrator(store, config.UploadConfig{MaxImageBytes: 1 << 20, MaxVideoBytes: 1 << 20}),
	})
	return &listingFixture{svc: svc, repo: repo, store: store, campaigns: campaigns}
}

func TestCreateListing_StoresImagesInOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fix := newListingFixture(t, now)

	listing, err := fix.svc.CreateListing(context.Background(), "merchant-1", CreateListingInput{
		Status: domain.StatusDraft,
		Attrs:  map[string]any{"title": "Helmet"},
		Images: imageHeaders(t, "images", "a.png", "b.png", "c.png"),
	})
	require.NoError(t, err)

	urls, ok := listing.Attrs["images"].([]string)
	require.True(t, ok)
	assert.Len(t, urls, 3)
	assert.Equal(t, "Helmet", listing.Attrs["title"])
	assert.Equal(t, domain.StatusDraft, listing.Status)
	assert.Len(t, fix.store.paths, 3)
}

func TestCreateListing_RequiresAtLeastOneImage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fix := newListingFixture(t, now)

	_, err := fix.svc.CreateListing(context.Background(), "merchant-1", CreateListingInput{
		Status: domain.StatusDraft,
	})
	require.Error(t, err)
	assert.Equal(t, 400, httpStatusOf(err))
}

func TestCreateListing_RefusedPastCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fix := newListingFixture(t, now)
	fix.campaigns.campaigns = []domain.FlashSaleCampaign{
		activeCampaign("sale", now.Add(-time.Hour), now.Add(time.Hour), now.Add(-time.Minute)),
	}

	_, err := fix.svc.CreateListing(context.Background(), "merchant-1", CreateListingInput{
		Status: domain.StatusDraft,
		Images: imageHeaders(t, "images", "a.png"),
	})
	require.Error(t, err)
	assert.Equal(t, 403, httpStatusOf(err))
	assert.Empty(t, fix.store.paths, "the gate runs before any upload")
	assert.Empty(t, fix.repo.docs)
}

func TestCreateListing_AllowedWithinCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fix := newListingFixture(t, now)
	fix.campaigns.campaigns = []domain.FlashSaleCampaign{
		activeCampaign("sale", now.Add(-time.Hour), now.Add(time.Hour), now.Add(time.Hour)),
	}

	_, err := fix.svc.CreateListing(context.Background(), "merchant-1", CreateListingInput{
		Status: domain.StatusPending,
		Images: imageHeaders(t, "images", "a.png"),
	})
	assert.NoError(t, err)
}

func TestCreateListing_RejectsNonCreatableStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fix := newListingFixture(t, now)

	_, err := fix.svc.CreateListing(context.Background(), "merchant-1", CreateListingInput{
		Status: domain.StatusVerified,
		Images: imageHeaders(t, "images", "a.png"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, fix.repo.docs)
}
