package entity

import "time"

// Severity clasifica el nivel de stock de una variante según sus umbrales.
type Severity string

const (
	SeverityNormal     Severity = "normal"
	SeverityLow        Severity = "low"
	SeverityCritical   Severity = "critical"
	SeverityOutOfStock Severity = "out_of_stock"
)

// Rank devuelve el orden de urgencia (mayor = peor).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityCritical:
		return 2
	case SeverityOutOfStock:
		return 3
	default:
		return 0
	}
}

// WorseThan informa si s es estrictamente más urgente que other.
func (s Severity) WorseThan(other Severity) bool {
	return s.Rank() > other.Rank()
}

// Topics de publicación de eventos de cruce de umbral.
const (
	TopicLowStock      = "inventory.low-stock"
	TopicCriticalStock = "inventory.critical-stock"
	TopicOutOfStock    = "inventory.out-of-stock"
)

// CrossingEvent se emite cuando una mutación de stock cruza hacia abajo un
// umbral (normal → low → critical → out-of-stock). A lo sumo un evento por
// mutación: si la caída salta varios niveles se emite solo el peor.
type CrossingEvent struct {
	VariantID        string
	StoreID          string
	SKU              string
	ProductName      string
	PreviousQuantity int64
	NewQuantity      int64
	Severity         Severity
	Threshold        int // umbral cruzado (low/critical); 0 para out-of-stock
	OccurredAt       time.Time
}

// Topic devuelve el canal de publicación según la severidad del evento.
func (e *CrossingEvent) Topic() string {
	switch e.Severity {
	case SeverityOutOfStock:
		return TopicOutOfStock
	case SeverityCritical:
		return TopicCriticalStock
	default:
		return TopicLowStock
	}
}
