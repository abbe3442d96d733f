package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// KYCRepository persists KYC records, one per business, keyed by the owner id.
type KYCRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*domain.Resource, error)
	ListLocations(ctx context.Context, ownerID string) ([]domain.KYCLocation, error)
	// SubmitBatch writes the KYC record, its locations and the business
	// status flip to submitted as one atomic transaction.
	SubmitBatch(ctx context.Context, submission *domain.KYCSubmission) error
	Patch(ctx context.Context, ownerID string, attrs map[string]any, status *domain.Status) (*domain.Resource, error)
}

type kycRepository struct {
	docs *documentRepository
	pool *pgxpool.Pool
}

// NewKYCRepository instantiates repository.
func NewKYCRepository(pool *pgxpool.Pool, logger *zap.Logger) KYCRepository {
	return &kycRepository{
		docs: newDocumentRepository(pool, "kyc_records", domain.KindKYC, logger),
		pool: pool,
	}
}

func (r *kycRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Resource, error) {
	return r.docs.GetByID(ctx, ownerID)
}

func (r *kycRepository) Patch(ctx context.Context, ownerID string, attrs map[string]any, status *domain.Status) (*domain.Resource, error) {
	return r.docs.Patch(ctx, ownerID, attrs, status)
}

func (r *kycRepository) ListLocations(ctx context.Context, ownerID string) ([]domain.KYCLocation, error) {
	const query = `
        SELECT id, owner_id, label, address, city, latitude, longitude
        FROM kyc_locations WHERE owner_id=$1 ORDER BY label`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.KYCLocation
	for rows.Next() {
		var loc domain.KYCLocation
		if err := rows.Scan(&loc.ID, &loc.OwnerID, &loc.Label, &loc.Address, &loc.City, &loc.Latitude, &loc.Longitude); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}

func (r *kycRepository) SubmitBatch(ctx context.Context, submission *domain.KYCSubmission) error {
	record := submission.Record
	attrs, err := json.Marshal(record.Attrs)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const upsertRecord = `
            INSERT INTO kyc_records (id, owner_id, status, attrs)
            VALUES ($1,$2,$3,$4)
            ON CONFLICT (id) DO UPDATE
                SET status = EXCLUDED.status, attrs = EXCLUDED.attrs, updated_at = NOW()
            RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, upsertRecord, record.ID, record.OwnerID, record.Status, attrs).
			Scan(&record.CreatedAt, &record.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM kyc_locations WHERE owner_id=$1`, record.OwnerID); err != nil {
			return err
		}
		const insertLocation = `
            INSERT INTO kyc_locations (id, owner_id, label, address, city, latitude, longitude)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		for _, loc := range submission.Locations {
			if _, err := tx.Exec(ctx, insertLocation,
				loc.ID, loc.OwnerID, loc.Label, loc.Address, loc.City, loc.Latitude, loc.Longitude); err != nil {
				return err
			}
		}

		cmd, err := tx.Exec(ctx,
			`UPDATE businesses SET status=$1, updated_at=NOW() WHERE owner_id=$2`,
			domain.StatusSubmitted, record.OwnerID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}
