package notification

import "time"

// Modos de backoff entre reintentos.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffExponential BackoffMode = "exponential"
)

// DefaultBaseDelay espera base entre reintentos para entregas de notificación.
const DefaultBaseDelay = 2 * time.Second

// Backoff calcula la espera antes del siguiente intento.
type Backoff struct {
	Mode      BackoffMode
	BaseDelay time.Duration
}

// Delay devuelve la espera tras el intento fallido attempt (base 1).
// Exponencial: base * 2^(attempt-1); con base 2000ms: 2000, 4000, 8000...
func (b Backoff) Delay(attempt int) time.Duration {
	base := b.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	if b.Mode != BackoffExponential {
		return base
	}
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}
