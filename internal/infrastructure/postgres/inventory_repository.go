package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Las mutaciones corren en transacción con bloqueo de fila (SELECT FOR
// UPDATE): el lock se sostiene solo durante el read-modify-write.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador de inventario.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// Get obtiene el nivel de stock de una variante en una tienda.
func (r *InventoryRepo) Get(ctx context.Context, variantID, storeID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT variant_id, store_id, quantity, last_restocked_at, updated_at
		FROM inventory_levels WHERE variant_id = $1 AND store_id = $2`
	var rec entity.InventoryRecord
	err := r.pool.QueryRow(ctx, query, variantID, storeID).Scan(
		&rec.VariantID, &rec.StoreID, &rec.Quantity, &rec.LastRestockedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return &rec, nil
}

// Adjust aplica un delta de forma atómica: bloquea la fila, verifica que el
// resultado no sea negativo y actualiza. Rechazo completo si el delta dejaría
// la cantidad bajo cero.
func (r *InventoryRepo) Adjust(ctx context.Context, variantID, storeID string, delta int64) (*repository.Mutation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := lockRow(ctx, tx, variantID, storeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	previous := rec.Quantity
	newQty := previous + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	rec.Quantity = newQty
	rec.UpdatedAt = now
	if delta > 0 {
		rec.LastRestockedAt = &now
	}
	if err := upsertLevel(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &repository.Mutation{Previous: previous, Record: rec}, nil
}

// Set fija la cantidad absoluta; crea el registro si no existe.
func (r *InventoryRepo) Set(ctx context.Context, variantID, storeID string, quantity int64) (*repository.Mutation, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := lockRow(ctx, tx, variantID, storeID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var previous int64
	if rec == nil {
		rec = &entity.InventoryRecord{VariantID: variantID, StoreID: storeID}
	} else {
		previous = rec.Quantity
	}
	if quantity > previous {
		rec.LastRestockedAt = &now
	}
	rec.Quantity = quantity
	rec.UpdatedAt = now
	if err := upsertLevel(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &repository.Mutation{Previous: previous, Record: rec}, nil
}

// ListLevels devuelve los niveles de la tienda con metadatos de variante.
func (r *InventoryRepo) ListLevels(ctx context.Context, storeID string, limit, offset int) ([]repository.LevelRow, error) {
	query := `
		SELECT il.variant_id, il.store_id, il.quantity, il.last_restocked_at, il.updated_at,
		       v.sku, v.product_name, v.category
		FROM inventory_levels il
		JOIN variants v ON v.id = il.variant_id
		WHERE il.store_id = $1
		ORDER BY il.quantity ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()

	var out []repository.LevelRow
	for rows.Next() {
		var row repository.LevelRow
		if err := rows.Scan(
			&row.Record.VariantID, &row.Record.StoreID, &row.Record.Quantity,
			&row.Record.LastRestockedAt, &row.Record.UpdatedAt,
			&row.SKU, &row.ProductName, &row.Category,
		); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// lockRow bloquea la fila del nivel (SELECT FOR UPDATE). Devuelve nil sin
// error si la fila no existe.
func lockRow(ctx context.Context, tx pgx.Tx, variantID, storeID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT variant_id, store_id, quantity, last_restocked_at, updated_at
		FROM inventory_levels WHERE variant_id = $1 AND store_id = $2
		FOR UPDATE`
	var rec entity.InventoryRecord
	err := tx.QueryRow(ctx, query, variantID, storeID).Scan(
		&rec.VariantID, &rec.StoreID, &rec.Quantity, &rec.LastRestockedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock inventory level: %w", err)
	}
	return &rec, nil
}

// upsertLevel inserta o actualiza el nivel (por variante y tienda).
func upsertLevel(ctx context.Context, q Querier, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_levels (variant_id, store_id, quantity, last_restocked_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (variant_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              last_restocked_at = EXCLUDED.last_restocked_at,
		              updated_at = EXCLUDED.updated_at`
	_, err := q.Exec(ctx, query, rec.VariantID, rec.StoreID, rec.Quantity, rec.LastRestockedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}
