package repository

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// Mutation resultado de una mutación atómica de stock: cantidad previa y
// registro actualizado. La previa permite detectar cruces de umbral.
type Mutation struct {
	Previous int64
	Record   *entity.InventoryRecord
}

// LevelRow nivel de stock enriquecido con los metadatos de la variante,
// para listados de stock bajo.
type LevelRow struct {
	Record      entity.InventoryRecord
	SKU         string
	ProductName string
	Category    string
}

// InventoryRepository define el puerto sobre el stock por (variante, tienda).
// Contrato de concurrencia: Adjust y Set son linealizables por variante —
// dos Adjust(-1) concurrentes contra cantidad 1 terminan con exactamente uno
// exitoso y otro ErrInsufficientStock, nunca cantidad negativa. El lock de
// fila se sostiene solo durante el read-modify-write, jamás a través de una
// llamada de red.
type InventoryRepository interface {
	// Get devuelve el registro o domain.ErrNotFound.
	Get(ctx context.Context, variantID, storeID string) (*entity.InventoryRecord, error)
	// Adjust aplica un delta de forma atómica. domain.ErrInsufficientStock si
	// el resultado sería negativo (rechazo completo, sin efecto parcial);
	// domain.ErrNotFound si la variante no tiene registro de stock.
	Adjust(ctx context.Context, variantID, storeID string, delta int64) (*Mutation, error)
	// Set fija la cantidad absoluta; crea el registro si no existe.
	// domain.ErrInvalidQuantity si quantity < 0. Una subida de cantidad
	// estampa LastRestockedAt.
	Set(ctx context.Context, variantID, storeID string, quantity int64) (*Mutation, error)
	// ListLevels devuelve los niveles de una tienda con metadatos de variante.
	ListLevels(ctx context.Context, storeID string, limit, offset int) ([]LevelRow, error)
}
