package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// BusinessRepository persists business profiles (one per merchant).
type BusinessRepository interface {
	DocumentRepository
	GetByOwner(ctx context.Context, ownerID string) (*domain.Resource, error)
}

// NewBusinessRepository instantiates repository.
func NewBusinessRepository(pool *pgxpool.Pool, logger *zap.Logger) BusinessRepository {
	return &businessRepository{documentRepository: newDocumentRepository(pool, "businesses", domain.KindBusiness, logger)}
}

type businessRepository struct {
	*documentRepository
}

func (r *businessRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Resource, error) {
	const query = `
        SELECT id, owner_id, status, attrs, created_at, updated_at
        FROM businesses WHERE owner_id=$1`
	return r.fetchSingle(ctx, query, ownerID)
}

// ListingRepository persists catalogue listings.
type ListingRepository interface {
	DocumentRepository
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool, logger *zap.Logger) ListingRepository {
	return newDocumentRepository(pool, "listings", domain.KindListing, logger)
}

// EventRepository persists merchant events.
type EventRepository interface {
	DocumentRepository
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool, logger *zap.Logger) EventRepository {
	return newDocumentRepository(pool, "events", domain.KindEvent, logger)
}
