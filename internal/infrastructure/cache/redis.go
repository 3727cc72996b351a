package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

var _ inventory.LevelCache = (*RedisLevelCache)(nil)

// RedisLevelCache caché de niveles de stock sobre Redis. Cualquier falla de
// Redis se trata como miss: el caché nunca afecta la corrección de las
// lecturas ni de las mutaciones.
type RedisLevelCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisLevelCache construye el caché y verifica la conexión.
func NewRedisLevelCache(ctx context.Context, addr, password string, db int, ttl time.Duration, log *logger.Logger) (*RedisLevelCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &RedisLevelCache{client: client, ttl: ttl, log: log}, nil
}

func levelCacheKey(variantID, storeID string) string {
	return "inventory:level:" + storeID + ":" + variantID
}

// Get devuelve el registro cacheado, o false si no está o Redis falla.
func (c *RedisLevelCache) Get(ctx context.Context, variantID, storeID string) (*entity.InventoryRecord, bool) {
	raw, err := c.client.Get(ctx, levelCacheKey(variantID, storeID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug().Err(err).Msg("falla de lectura en caché de niveles")
		}
		return nil, false
	}
	var rec entity.InventoryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.log.Debug().Err(err).Msg("payload corrupto en caché de niveles")
		return nil, false
	}
	return &rec, true
}

// Set guarda el registro con el TTL configurado. Best effort.
func (c *RedisLevelCache) Set(ctx context.Context, rec *entity.InventoryRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, levelCacheKey(rec.VariantID, rec.StoreID), raw, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Msg("falla de escritura en caché de niveles")
	}
}

// Invalidate elimina la entrada. Best effort.
func (c *RedisLevelCache) Invalidate(ctx context.Context, variantID, storeID string) {
	if err := c.client.Del(ctx, levelCacheKey(variantID, storeID)).Err(); err != nil {
		c.log.Debug().Err(err).Msg("falla de invalidación en caché de niveles")
	}
}

// Close cierra la conexión con Redis.
func (c *RedisLevelCache) Close() error {
	return c.client.Close()
}
