package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryStore)(nil)

type levelKey struct {
	variantID string
	storeID   string
}

// InventoryStore implementación en memoria de InventoryRepository, para
// tests y entornos de desarrollo sin base de datos. Un solo mutex
// serializa las mutaciones: cumple el mismo contrato de linealizabilidad
// que la implementación sobre PostgreSQL.
type InventoryStore struct {
	mu     sync.Mutex
	levels map[levelKey]*entity.InventoryRecord
	meta   map[string]variantMeta
}

type variantMeta struct {
	sku         string
	productName string
	category    string
}

// NewInventoryStore construye un almacén de inventario vacío.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		levels: make(map[levelKey]*entity.InventoryRecord),
		meta:   make(map[string]variantMeta),
	}
}

// RegisterVariant registra los metadatos de una variante para ListLevels.
func (s *InventoryStore) RegisterVariant(variantID, sku, productName, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[variantID] = variantMeta{sku: sku, productName: productName, category: category}
}

// Get devuelve el registro o domain.ErrNotFound.
func (s *InventoryStore) Get(_ context.Context, variantID, storeID string) (*entity.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.levels[levelKey{variantID, storeID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// Adjust aplica un delta de forma atómica; rechazo completo si el resultado
// sería negativo.
func (s *InventoryStore) Adjust(_ context.Context, variantID, storeID string, delta int64) (*repository.Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.levels[levelKey{variantID, storeID}]
	if !ok {
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
	cp := *rec
	return &repository.Mutation{Previous: previous, Record: &cp}, nil
}

// Set fija la cantidad absoluta; crea el registro si no existe.
func (s *InventoryStore) Set(_ context.Context, variantID, storeID string, quantity int64) (*repository.Mutation, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := levelKey{variantID, storeID}
	now := time.Now()
	rec, ok := s.levels[key]
	var previous int64
	if !ok {
		rec = &entity.InventoryRecord{VariantID: variantID, StoreID: storeID}
		s.levels[key] = rec
	} else {
		previous = rec.Quantity
	}
	if quantity > previous {
		rec.LastRestockedAt = &now
	}
	rec.Quantity = quantity
	rec.UpdatedAt = now
	cp := *rec
	return &repository.Mutation{Previous: previous, Record: &cp}, nil
}

// ListLevels devuelve los niveles de la tienda ordenados por cantidad
// ascendente, con los metadatos registrados de cada variante.
func (s *InventoryStore) ListLevels(_ context.Context, storeID string, limit, offset int) ([]repository.LevelRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []repository.LevelRow
	for key, rec := range s.levels {
		if key.storeID != storeID {
			continue
		}
		m := s.meta[key.variantID]
		out = append(out, repository.LevelRow{
			Record:      *rec,
			SKU:         m.sku,
			ProductName: m.productName,
			Category:    m.category,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Record.Quantity < out[j].Record.Quantity
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
