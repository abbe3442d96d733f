package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rijan-rayamajhi/gem-business/internal/domain"
)

// DocumentRepository persists one collection of owned, status-bearing
// documents. Every resource kind shares the same table shape, so the typed
// repositories below are thin bindings of this implementation.
type DocumentRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	ListByOwner(ctx context.Context, ownerID string, status *domain.Status) ([]domain.Resource, error)
	Patch(ctx context.Context, id string, attrs map[string]any, status *domain.Status) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	pool   *pgxpool.Pool
	table  string
	kind   domain.Kind
	logger *zap.Logger
}

func newDocumentRepository(pool *pgxpool.Pool, table string, kind domain.Kind, logger *zap.Logger) *documentRepository {
	return &documentRepository{pool: pool, table: table, kind: kind, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, res *domain.Resource) error {
	attrs, err := json.Marshal(res.Attrs)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (id, owner_id, status, attrs)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`, r.table)
	return r.pool.QueryRow(ctx, query, res.ID, res.OwnerID, res.Status, attrs).
		Scan(&res.CreatedAt, &res.UpdatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := fmt.Sprintf(`
        SELECT id, owner_id, status, attrs, created_at, updated_at
        FROM %s WHERE id=$1`, r.table)
	return r.fetchSingle(ctx, query, id)
}

// ListByOwner returns the owner's documents newest first, optionally filtered
// by status. When the ordered query fails it retries unordered, logging the
// failure rather than failing the request.
func (r *documentRepository) ListByOwner(ctx context.Context, ownerID string, status *domain.Status) ([]domain.Resource, error) {
	base := fmt.Sprintf(`SELECT id, owner_id, status, attrs, created_at, updated_at FROM %s WHERE owner_id=$1`, r.table)
	args := []any{ownerID}
	if status != nil {
		base += " AND status=$2"
		args = append(args, *status)
	}

	rows, err := r.pool.Query(ctx, base+" ORDER BY created_at DESC", args...)
	if err != nil {
		r.logger.Warn("ordered list failed, retrying unordered",
			zap.String("table", r.table), zap.Error(err))
		rows, err = r.pool.Query(ctx, base, args...)
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()
	return r.scanResources(rows)
}

// Patch merges attrs into the stored document at field granularity, sets the
// status column when a parsed status is supplied, and always refreshes
// updated_at. created_at and owner_id are never touched.
func (r *documentRepository) Patch(ctx context.Context, id string, attrs map[string]any, status *domain.Status) (*domain.Resource, error) {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        UPDATE %s SET attrs = attrs || $1::jsonb, status = COALESCE($2, status), updated_at = NOW()
        WHERE id=$3
        RETURNING id, owner_id, status, attrs, created_at, updated_at`, r.table)
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	return r.scanRow(r.pool.QueryRow(ctx, query, encoded, statusArg, id))
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, r.table)
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Resource, error) {
	return r.scanRow(r.pool.QueryRow(ctx, query, arg))
}

func (r *documentRepository) scanRow(row pgx.Row) (*domain.Resource, error) {
	var res domain.Resource
	var attrs []byte
	if err := row.Scan(&res.ID, &res.OwnerID, &res.Status, &attrs, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attrs, &res.Attrs); err != nil {
		return nil, err
	}
	res.Kind = r.kind
	return &res, nil
}

func (r *documentRepository) scanResources(rows pgx.Rows) ([]domain.Resource, error) {
	var result []domain.Resource
	for rows.Next() {
		var res domain.Resource
		var attrs []byte
		if err := rows.Scan(&res.ID, &res.OwnerID, &res.Status, &attrs, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(attrs, &res.Attrs); err != nil {
			return nil, err
		}
		res.Kind = r.kind
		result = append(result, res)
	}
	return result, rows.Err()
}
