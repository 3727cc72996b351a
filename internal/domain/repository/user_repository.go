package repository

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// UserRepository define el puerto de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndStore(ctx context.Context, email, storeID string) (*entity.User, error)
}
