package bus

import (
	"context"
	"sync"

	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

var _ inventory.EventBus = (*InMemory)(nil)

// InMemory bus de eventos en memoria. Cada publicación despacha a los
// suscriptores del tópico en goroutines propias: el publicador nunca espera
// a los handlers. Wait permite drenar los despachos pendientes en el
// apagado del servicio.
type InMemory struct {
	mu       sync.RWMutex
	handlers map[string][]inventory.EventHandler
	wg       sync.WaitGroup
	log      *logger.Logger
}

// NewInMemory construye un bus vacío.
func NewInMemory(log *logger.Logger) *InMemory {
	return &InMemory{
		handlers: make(map[string][]inventory.EventHandler),
		log:      log,
	}
}

// Subscribe registra un handler para el tópico. No es seguro suscribirse
// concurrentemente con Publish sobre el mismo tópico durante el arranque;
// el cableado se hace antes de servir tráfico.
func (b *InMemory) Subscribe(topic string, handler inventory.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish despacha el evento a los suscriptores del tópico. Nunca bloquea ni
// devuelve error por fallas de handlers: un panic en un handler se registra
// y no afecta a los demás.
func (b *InMemory) Publish(ctx context.Context, topic string, ev *entity.CrossingEvent) error {
	b.mu.RLock()
	subs := b.handlers[topic]
	b.mu.RUnlock()

	// La entrega sobrevive al request que originó la mutación: el contexto se
	// desacopla de la cancelación del publicador.
	ctx = context.WithoutCancel(ctx)

	for _, handler := range subs {
		b.wg.Add(1)
		go func(h inventory.EventHandler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error().
						Str("topic", topic).
						Interface("panic", r).
						Msg("panic en handler de eventos")
				}
			}()
			h(ctx, ev)
		}(handler)
	}
	return nil
}

// Wait bloquea hasta que terminen todos los despachos en vuelo.
func (b *InMemory) Wait() {
	b.wg.Wait()
}
