package threshold

import (
	"time"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// EventMeta datos de la variante que acompañan al evento de cruce.
type EventMeta struct {
	VariantID   string
	StoreID     string
	SKU         string
	ProductName string
	Category    string
}

// Detector decide si una mutación de stock cruza un umbral hacia abajo.
type Detector struct {
	policy *Policy
}

// NewDetector construye el detector sobre una política de umbrales.
func NewDetector(policy *Policy) *Detector {
	return &Detector{policy: policy}
}

// Detect clasifica la transición previous→next y devuelve el evento a emitir,
// o nil si no hay cruce. Solo dispara en cruces descendentes: la clasificación
// en next debe ser estrictamente peor que en previous Y la cantidad debe haber
// bajado. Las reposiciones (subidas) nunca emiten por esta vía. Si la caída
// salta varios niveles se emite un único evento con la peor severidad.
func (d *Detector) Detect(previous, next int64, meta EventMeta) *entity.CrossingEvent {
	if next >= previous {
		return nil
	}
	before := d.policy.Classify(previous, meta.Category)
	after := d.policy.Classify(next, meta.Category)
	if !after.WorseThan(before) {
		return nil
	}
	return &entity.CrossingEvent{
		VariantID:        meta.VariantID,
		StoreID:          meta.StoreID,
		SKU:              meta.SKU,
		ProductName:      meta.ProductName,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Severity:         after,
		Threshold:        d.thresholdFor(after, meta.Category),
		OccurredAt:       time.Now(),
	}
}

// thresholdFor devuelve el umbral que se cruzó según la severidad resultante.
func (d *Detector) thresholdFor(sev entity.Severity, category string) int {
	switch sev {
	case entity.SeverityLow:
		return d.policy.LowStockThreshold(category)
	case entity.SeverityCritical:
		return d.policy.CriticalThreshold(category)
	default:
		return 0
	}
}
