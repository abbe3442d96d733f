package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// CampaignRepository persists flash-sale campaign documents.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.FlashSaleCampaign) error
	GetByID(ctx context.Context, id string) (*domain.FlashSaleCampaign, error)
	ListAll(ctx context.Context) ([]domain.FlashSaleCampaign, error)
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository instantiates repository.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.FlashSaleCampaign) error {
	doc, err := json.Marshal(campaign.Doc)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO flash_sale_campaigns (id, status, doc)
        VALUES ($1,$2,$3)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query, campaign.ID, campaign.Status, doc).
		Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.FlashSaleCampaign, error) {
	const query = `
        SELECT id, status, doc, created_at, updated_at
        FROM flash_sale_campaigns WHERE id=$1`
	var campaign domain.FlashSaleCampaign
	var doc []byte
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&campaign.ID, &campaign.Status, &doc, &campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &campaign.Doc); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) ListAll(ctx context.Context) ([]domain.FlashSaleCampaign, error) {
	const query = `
        SELECT id, status, doc, created_at, updated_at
        FROM flash_sale_campaigns ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

func scanCampaigns(rows pgx.Rows) ([]domain.FlashSaleCampaign, error) {
	var result []domain.FlashSaleCampaign
	for rows.Next() {
		var campaign domain.FlashSaleCampaign
		var doc []byte
		if err := rows.Scan(&campaign.ID, &campaign.Status, &doc, &campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(doc, &campaign.Doc); err != nil {
			return nil, err
		}
		result = append(result, campaign)
	}
	return result, rows.Err()
}
