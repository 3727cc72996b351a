package repository

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// VariantRepository define el puerto de catálogo de variantes.
type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	GetBySKU(ctx context.Context, storeID, sku string) (*entity.Variant, error)
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Variant, error)
}
