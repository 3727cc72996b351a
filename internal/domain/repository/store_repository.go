package repository

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// StoreRepository define el puerto de tiendas del marketplace.
type StoreRepository interface {
	Create(ctx context.Context, s *entity.Store) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Store, error)
}
