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

// VariantUseCase CRUD de variantes del catálogo de una tienda.
type VariantUseCase struct {
	variantRepo repository.VariantRepository
}

// NewVariantUseCase construye el caso de uso de variantes.
func NewVariantUseCase(variantRepo repository.VariantRepository) *VariantUseCase {
	return &VariantUseCase{variantRepo: variantRepo}
}

// Create da de alta una variante. ErrDuplicate si el SKU ya existe en la tienda.
func (uc *VariantUseCase) Create(ctx context.Context, storeID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if storeID == "" || in.SKU == "" || in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.variantRepo.GetBySKU(ctx, storeID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	v := &entity.Variant{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		SKU:         in.SKU,
		ProductName: in.ProductName,
		Category:    in.Category,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.variantRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVariantResponse(v), nil
}

// GetByID devuelve la variante si pertenece a la tienda del caller.
func (uc *VariantUseCase) GetByID(ctx context.Context, storeID, id string) (*dto.VariantResponse, error) {
	v, err := uc.variantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return toVariantResponse(v), nil
}

// List devuelve las variantes de la tienda paginadas.
func (uc *VariantUseCase) List(ctx context.Context, storeID string, limit, offset int) ([]dto.VariantResponse, error) {
	vs, err := uc.variantRepo.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, *toVariantResponse(v))
	}
	return out, nil
}

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:          v.ID,
		StoreID:     v.StoreID,
		SKU:         v.SKU,
		ProductName: v.ProductName,
		Category:    v.Category,
		Price:       v.Price,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
