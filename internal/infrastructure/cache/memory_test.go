package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

func TestMemoryLevelCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLevelCache(time.Minute)

	rec := &entity.InventoryRecord{VariantID: "v1", StoreID: "s1", Quantity: 8}
	c.Set(ctx, rec)

	got, ok := c.Get(ctx, "v1", "s1")
	require.True(t, ok)
	assert.Equal(t, int64(8), got.Quantity)

	_, ok = c.Get(ctx, "v2", "s1")
	assert.False(t, ok)
}

func TestMemoryLevelCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLevelCache(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set(ctx, &entity.InventoryRecord{VariantID: "v1", StoreID: "s1", Quantity: 8})

	current = current.Add(2 * time.Minute)
	_, ok := c.Get(ctx, "v1", "s1")
	assert.False(t, ok, "una entrada vencida es un miss")
}

func TestMemoryLevelCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLevelCache(time.Minute)

	c.Set(ctx, &entity.InventoryRecord{VariantID: "v1", StoreID: "s1", Quantity: 8})
	c.Invalidate(ctx, "v1", "s1")

	_, ok := c.Get(ctx, "v1", "s1")
	assert.False(t, ok)
}
