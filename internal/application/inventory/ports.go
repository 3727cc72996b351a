package inventory

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// EventHandler procesa un evento de cruce de umbral. La entrega es
// asíncrona respecto de la mutación que lo originó.
type EventHandler func(ctx context.Context, ev *entity.CrossingEvent)

// EventBus puerto de publicación/suscripción de eventos de inventario.
// El contrato del monitor (a lo sumo un evento por cruce descendente) debe
// sostenerse con cualquier transporte: bus en memoria o broker externo.
type EventBus interface {
	Publish(ctx context.Context, topic string, ev *entity.CrossingEvent) error
	Subscribe(topic string, handler EventHandler)
}

// LevelCache puerto de caché de lectura de niveles de stock. Una falla de
// caché nunca afecta la mutación ni la lectura: se trata como miss.
type LevelCache interface {
	Get(ctx context.Context, variantID, storeID string) (*entity.InventoryRecord, bool)
	Set(ctx context.Context, rec *entity.InventoryRecord)
	Invalidate(ctx context.Context, variantID, storeID string)
}
