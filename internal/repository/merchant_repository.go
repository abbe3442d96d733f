package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// MerchantRepository encapsulates merchant account persistence.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
}

type merchantRepository struct {
	pool *pgxpool.Pool
}

// NewMerchantRepository instantiates repository.
func NewMerchantRepository(pool *pgxpool.Pool) MerchantRepository {
	return &merchantRepository{pool: pool}
}

func (r *merchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	const query = `
        INSERT INTO merchants (id, name, email, phone, password_hash)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		merchant.ID, merchant.Name, merchant.Email, merchant.Phone, merchant.PasswordHash).
		Scan(&merchant.CreatedAt, &merchant.UpdatedAt)
}

func (r *merchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, created_at, updated_at
        FROM merchants WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *merchantRepository) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, created_at, updated_at
        FROM merchants WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *merchantRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&merchant.ID,
		&merchant.Name,
		&merchant.Email,
		&merchant.Phone,
		&merchant.PasswordHash,
		&merchant.CreatedAt,
		&merchant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// IsNoRows reports whether err is the driver's missing-row sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
