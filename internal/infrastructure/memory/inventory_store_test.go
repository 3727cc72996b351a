package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/vendora-api/internal/domain"
)

func TestInventoryStore_GetNotFound(t *testing.T) {
	store := NewInventoryStore()
	_, err := store.Get(context.Background(), "v1", "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryStore_SetAndAdjust(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()

	mut, err := store.Set(ctx, "v1", "s1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), mut.Previous)
	assert.Equal(t, int64(10), mut.Record.Quantity)
	assert.NotNil(t, mut.Record.LastRestockedAt, "una subida de cantidad estampa last_restocked_at")

	mut, err = store.Adjust(ctx, "v1", "s1", -3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), mut.Previous)
	assert.Equal(t, int64(7), mut.Record.Quantity)
}

func TestInventoryStore_SetNegativeQuantity(t *testing.T) {
	store := NewInventoryStore()
	_, err := store.Set(context.Background(), "v1", "s1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestInventoryStore_AdjustInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	_, err := store.Set(ctx, "v1", "s1", 2)
	require.NoError(t, err)

	_, err = store.Adjust(ctx, "v1", "s1", -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, err := store.Get(ctx, "v1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Quantity, "rechazo completo: sin efecto parcial")
}

// Dos decrementos concurrentes contra cantidad 1: exactamente uno gana.
func TestInventoryStore_ConcurrentAdjustLastUnit(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	_, err := store.Set(ctx, "v1", "s1", 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Adjust(ctx, "v1", "s1", -1)
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, insufficientCount)

	rec, err := store.Get(ctx, "v1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Quantity)
}

func TestInventoryStore_ConcurrentAdjustNeverNegative(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	_, err := store.Set(ctx, "v1", "s1", 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Adjust(ctx, "v1", "s1", -1)
		}()
	}
	wg.Wait()

	rec, err := store.Get(ctx, "v1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Quantity)
}

func TestInventoryStore_ListLevelsSortedByQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	store.RegisterVariant("v1", "SKU-1", "Teclado", "electronics")
	store.RegisterVariant("v2", "SKU-2", "Mouse", "electronics")
	store.RegisterVariant("v3", "SKU-3", "Monitor", "electronics")

	for id, qty := range map[string]int64{"v1": 20, "v2": 3, "v3": 7} {
		_, err := store.Set(ctx, id, "s1", qty)
		require.NoError(t, err)
	}
	_, err := store.Set(ctx, "v9", "otra-tienda", 1)
	require.NoError(t, err)

	rows, err := store.ListLevels(ctx, "s1", 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SKU-2", rows[0].SKU)
	assert.Equal(t, "SKU-3", rows[1].SKU)
	assert.Equal(t, "SKU-1", rows[2].SKU)
}
