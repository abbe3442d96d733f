package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/rijan-rayamajhi/gem-business/internal/api/http"
	"github.com/rijan-rayamajhi/gem-business/internal/api/http/handlers"
	"github.com/rijan-rayamajhi/gem-business/internal/auth"
	"github.com/rijan-rayamajhi/gem-business/internal/config"
	"github.com/rijan-rayamajhi/gem-business/internal/domain"
	"github.com/rijan-rayamajhi/gem-business/internal/observability"
	"github.com/rijan-rayamajhi/gem-business/internal/service"
	"github.com/rijan-rayamajhi/gem-business/internal/upload"
)

// in-memory fakes for the repository interfaces the listing surface needs

type fakeMerchantRepo struct {
	merchants map[string]*domain.Merchant
}

func (r *fakeMerchantRepo) Create(ctx context.Context, merchant *domain.Merchant) error {
	r.merchants[merchant.ID] = merchant
	return nil
}

func (r *fakeMerchantRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	merchant, ok := r.merchants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return merchant, nil
}

func (r *fakeMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	for _, merchant := range r.merchants {
		if merchant.Email == email {
			return merchant, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeDocRepo struct {
	docs map[string]*domain.Resource
}

func (r *fakeDocRepo) Create(ctx context.Context, res *domain.Resource) error {
	cp := *res
	r.docs[res.ID] = &cp
	return nil
}

func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	res, ok := r.docs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *res
	return &cp, nil
}

func (r *fakeDocRepo) ListByOwner(ctx context.Context, ownerID string, status *domain.Status) ([]domain.Resource, error) {
	var result []domain.Resource
	for _, res := range r.docs {
		if res.OwnerID != ownerID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		result = append(result, *res)
	}
	return result, nil
}

func (r *fakeDocRepo) Patch(ctx context.Context, id string, attrs map[string]any, status *domain.Status) (*domain.Resource, error) {
	res, ok := r.docs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	for k, v := range attrs {
		res.Attrs[k] = v
	}
	if status != nil {
		res.Status = *status
	}
	res.UpdatedAt = time.Now()
	cp := *res
	return &cp, nil
}

func (r *fakeDocRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.docs, id)
	return nil
}

type fakeCampaignRepo struct{}

func (fakeCampaignRepo) Create(ctx context.Context, campaign *domain.FlashSaleCampaign) error {
	return nil
}

func (fakeCampaignRepo) GetByID(ctx context.Context, id string) (*domain.FlashSaleCampaign, error) {
	return nil, pgx.ErrNoRows
}

func (fakeCampaignRepo) ListAll(ctx context.Context) ([]domain.FlashSaleCampaign, error) {
	return nil, nil
}

type fakeObjectStore struct{}

func (fakeObjectStore) Put(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	return "mem://" + path, nil
}

func (fakeObjectStore) Delete(ctx context.Context, path string) error { return nil }

type listingAPI struct {
	app    *fiber.App
	tokens *auth.TokenManager
}

func newListingAPI(t *testing.T, merchantIDs ...string) *listingAPI {
	t.Helper()
	merchants := &fakeMerchantRepo{merchants: map[string]*domain.Merchant{}}
	for _, id := range merchantIDs {
		merchants.merchants[id] = &domain.Merchant{ID: id, Email: id + "@example.com"}
	}

	listings := service.NewListingService(service.ListingDependencies{
		ListingRepo: &fakeDocRepo{docs: map[string]*domain.Resource{}},
		FlashSales: service.NewFlashSaleService(
			config.FlashSaleConfig{CutoffFailOpen: true},
			service.FlashSaleDependencies{CampaignRepo: fakeCampaignRepo{}, Logger: zap.NewNop()},
		),
		Uploads: upload.NewOrchestrator(fakeObjectStore{}, config.UploadConfig{MaxImageBytes: 1 << 20, MaxVideoBytes: 1 << 20}),
	})

	tokens := auth.NewTokenManager("test-secret", 60)
	middleware := auth.NewAuthMiddleware(tokens, merchants)
	handler := handlers.NewListingsHandler(listings)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	group := app.Group("/api/v1/listings", middleware.Handle)
	group.Post("", handler.Create)
	group.Get("", handler.List)
	group.Get("/:id", handler.Get)
	group.Patch("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)

	return &listingAPI{app: app, tokens: tokens}
}

func (api *listingAPI) request(t *testing.T, method, path, merchantID string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if merchantID != "" {
		token, _, err := api.tokens.GenerateToken(merchantID, "")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := api.app.Test(req)
	require.NoError(t, err)
	return resp
}

func envelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed
}

func listingForm(t *testing.T, fields map[string]string, imageNames ...string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range imageNames {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("img"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (api *listingAPI) createListing(t *testing.T, merchantID string, fields map[string]string, images ...string) string {
	t.Helper()
	body, contentType := listingForm(t, fields, images...)
	resp := api.request(t, http.MethodPost, "/api/v1/listings", merchantID, body, contentType)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	parsed := envelope(t, resp)
	require.Equal(t, true, parsed["ok"])
	data := parsed["data"].(map[string]any)
	return data["id"].(string)
}

func TestListingsAPI_RequiresToken(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	resp := api.request(t, http.MethodGet, "/api/v1/listings", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	parsed := envelope(t, resp)
	assert.Equal(t, false, parsed["ok"])
	assert.NotEmpty(t, parsed["message"])
}

func TestListingsAPI_CreateAndList(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	id := api.createListing(t, "merchant-1", map[string]string{
		"status": "draft",
		"title":  "Helmet",
	}, "a.png", "b.png")

	resp := api.request(t, http.MethodGet, "/api/v1/listings", "merchant-1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := envelope(t, resp)
	require.Equal(t, true, parsed["ok"])
	items := parsed["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, id, item["id"])
	assert.Equal(t, "draft", item["status"])

	attrs := item["attrs"].(map[string]any)
	assert.Equal(t, "Helmet", attrs["title"])
	assert.Len(t, attrs["images"], 2)
}

func TestListingsAPI_CreateWithoutImagesIs400(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	body, contentType := listingForm(t, map[string]string{"status": "draft"})
	resp := api.request(t, http.MethodPost, "/api/v1/listings", "merchant-1", body, contentType)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope(t, resp)["ok"])
}

func TestListingsAPI_OwnershipHidesForeignListings(t *testing.T) {
	api := newListingAPI(t, "merchant-1", "merchant-2")

	id := api.createListing(t, "merchant-1", map[string]string{"status": "draft"}, "a.png")

	resp := api.request(t, http.MethodGet, "/api/v1/listings/"+id, "merchant-2", nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.request(t, http.MethodGet, "/api/v1/listings", "merchant-2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, envelope(t, resp)["data"])
}

func TestListingsAPI_LockedUpdateIsConflict(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	id := api.createListing(t, "merchant-1", map[string]string{"status": "draft"}, "a.png")

	patch := bytes.NewBufferString(`{"status":"pending"}`)
	resp := api.request(t, http.MethodPatch, "/api/v1/listings/"+id, "merchant-1", patch, fiber.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	patch = bytes.NewBufferString(`{"title":"New Title"}`)
	resp = api.request(t, http.MethodPatch, "/api/v1/listings/"+id, "merchant-1", patch, fiber.MIMEApplicationJSON)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.request(t, http.MethodDelete, "/api/v1/listings/"+id, "merchant-1", nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// locked records remain readable
	resp = api.request(t, http.MethodGet, "/api/v1/listings/"+id, "merchant-1", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListingsAPI_UnknownStatusPatchIs400(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	id := api.createListing(t, "merchant-1", map[string]string{"status": "draft"}, "a.png")

	patch := bytes.NewBufferString(`{"status":"archived"}`)
	resp := api.request(t, http.MethodPatch, "/api/v1/listings/"+id, "merchant-1", patch, fiber.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListingsAPI_MissingListingIs404(t *testing.T) {
	api := newListingAPI(t, "merchant-1")

	resp := api.request(t, http.MethodGet, "/api/v1/listings/nope", "merchant-1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
