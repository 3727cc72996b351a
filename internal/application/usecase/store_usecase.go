package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/vendora-api/internal/application/dto"
	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

// StoreUseCase alta y consulta de tiendas del marketplace.
type StoreUseCase struct {
	storeRepo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso de tiendas.
func NewStoreUseCase(storeRepo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo}
}

// Create da de alta una tienda activa.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storeRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// GetByID devuelve la tienda o ErrNotFound.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	s, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(s), nil
}

// List devuelve las tiendas paginadas.
func (uc *StoreUseCase) List(ctx context.Context, limit, offset int) ([]dto.StoreResponse, error) {
	ss, err := uc.storeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
