package bus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

func TestInMemory_PublishDispatchesToSubscribers(t *testing.T) {
	b := NewInMemory(logger.Nop())

	var mu sync.Mutex
	var received []string
	b.Subscribe(entity.TopicLowStock, func(_ context.Context, ev *entity.CrossingEvent) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev.VariantID)
	})

	ev := &entity.CrossingEvent{VariantID: "v1", Severity: entity.SeverityLow}
	require.NoError(t, b.Publish(context.Background(), entity.TopicLowStock, ev))
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"v1"}, received)
}

func TestInMemory_PublishWithoutSubscribers(t *testing.T) {
	b := NewInMemory(logger.Nop())
	err := b.Publish(context.Background(), entity.TopicOutOfStock, &entity.CrossingEvent{VariantID: "v1"})
	assert.NoError(t, err)
	b.Wait()
}

func TestInMemory_TopicsAreIsolated(t *testing.T) {
	b := NewInMemory(logger.Nop())

	var mu sync.Mutex
	counts := map[string]int{}
	for _, topic := range []string{entity.TopicLowStock, entity.TopicCriticalStock} {
		topic := topic
		b.Subscribe(topic, func(_ context.Context, _ *entity.CrossingEvent) {
			mu.Lock()
			defer mu.Unlock()
			counts[topic]++
		})
	}

	require.NoError(t, b.Publish(context.Background(), entity.TopicCriticalStock, &entity.CrossingEvent{VariantID: "v1"}))
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, counts[entity.TopicLowStock])
	assert.Equal(t, 1, counts[entity.TopicCriticalStock])
}

func TestInMemory_HandlerPanicDoesNotAffectOthers(t *testing.T) {
	b := NewInMemory(logger.Nop())

	var mu sync.Mutex
	var delivered int
	b.Subscribe(entity.TopicLowStock, func(_ context.Context, _ *entity.CrossingEvent) {
		panic("handler roto")
	})
	b.Subscribe(entity.TopicLowStock, func(_ context.Context, _ *entity.CrossingEvent) {
		mu.Lock()
		defer mu.Unlock()
		delivered++
	})

	require.NoError(t, b.Publish(context.Background(), entity.TopicLowStock, &entity.CrossingEvent{VariantID: "v1"}))
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, delivered)
}
