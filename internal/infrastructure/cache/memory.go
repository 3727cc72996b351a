package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

var _ inventory.LevelCache = (*MemoryLevelCache)(nil)

type memoryEntry struct {
	rec       entity.InventoryRecord
	expiresAt time.Time
}

// MemoryLevelCache caché de niveles en memoria con TTL, para desarrollo y
// tests cuando no hay Redis configurado. La expiración es perezosa: las
// entradas vencidas se descartan al leerlas.
type MemoryLevelCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryLevelCache construye un caché en memoria vacío.
func NewMemoryLevelCache(ttl time.Duration) *MemoryLevelCache {
	return &MemoryLevelCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get devuelve el registro cacheado, o false si no está o expiró.
func (c *MemoryLevelCache) Get(_ context.Context, variantID, storeID string) (*entity.InventoryRecord, bool) {
	key := levelCacheKey(variantID, storeID)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	rec := entry.rec
	return &rec, true
}

// Set guarda el registro con el TTL configurado.
func (c *MemoryLevelCache) Set(_ context.Context, rec *entity.InventoryRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[levelCacheKey(rec.VariantID, rec.StoreID)] = memoryEntry{
		rec:       *rec,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate elimina la entrada.
func (c *MemoryLevelCache) Invalidate(_ context.Context, variantID, storeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, levelCacheKey(variantID, storeID))
}
