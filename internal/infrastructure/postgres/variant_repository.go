package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, store_id, sku, product_name, category, price, created_at, updated_at`

// Create inserta una variante. domain.ErrDuplicate si el SKU ya existe en la tienda.
func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO variants (id, store_id, sku, product_name, category, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, v.ID, v.StoreID, v.SKU, v.ProductName, v.Category, v.Price, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID devuelve la variante o nil, nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetBySKU devuelve la variante por tienda+SKU o nil, nil si no existe.
func (r *VariantRepo) GetBySKU(ctx context.Context, storeID, sku string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE store_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, sku))
}

// ListByStore devuelve las variantes de la tienda paginadas.
func (r *VariantRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants
		WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var out []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.StoreID, &v.SKU, &v.ProductName, &v.Category, &v.Price, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *VariantRepo) scanOne(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.StoreID, &v.SKU, &v.ProductName, &v.Category, &v.Price, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}
