package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// maxBatchSize tope de paralelismo por sub-lote.
const maxBatchSize = 50

// BatchResult agregado de una entrega por lotes. Las fallas individuales no
// abortan el lote: se acumulan en Errors.
type BatchResult struct {
	SuccessCount int
	FailedCount  int
	Errors       []error
}

// NotifyBatch entrega un conjunto de payloads respetando un límite de tasa:
// sub-lotes de min(maxPerSecond, 50) en paralelo, con una espera entre lotes
// de 1000ms/maxPerSecond*batchSize. Cuenta como éxito toda entrega Sent o
// Delivered; validación fallida y dead-letter cuentan como falla.
func (p *Pipeline[T]) NotifyBatch(ctx context.Context, payloads []T, maxPerSecond int) *BatchResult {
	result := &BatchResult{}
	if len(payloads) == 0 {
		return result
	}
	if maxPerSecond <= 0 {
		maxPerSecond = 10
	}
	batchSize := maxPerSecond
	if batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}

	var mu sync.Mutex
	for start := 0; start < len(payloads); start += batchSize {
		end := start + batchSize
		if end > len(payloads) {
			end = len(payloads)
		}
		chunk := payloads[start:end]

		var wg sync.WaitGroup
		for _, payload := range chunk {
			wg.Add(1)
			go func(payload T) {
				defer wg.Done()
				delivery, err := p.Notify(ctx, payload)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					result.FailedCount++
					result.Errors = append(result.Errors, err)
				case delivery.Status == entity.NotificationStatusDeadLettered:
					result.FailedCount++
					result.Errors = append(result.Errors, errors.New(delivery.LastError))
				default:
					result.SuccessCount++
				}
			}(payload)
		}
		wg.Wait()

		if end < len(payloads) {
			delay := time.Second / time.Duration(maxPerSecond) * time.Duration(len(chunk))
			if serr := p.sleep(ctx, delay); serr != nil {
				// Contexto cancelado: el resto del lote queda sin procesar.
				result.FailedCount += len(payloads) - end
				return result
			}
		}
	}
	return result
}
