package inventory

import (
	"context"
	"sort"

	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
	"github.com/tu-usuario/vendora-api/internal/domain/threshold"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

// Monitor orquesta las mutaciones de stock: valida la entrada, delega la
// mutación atómica al repositorio, corre el detector de cruces y publica a lo
// sumo un evento por mutación. La publicación es fire-and-forget respecto del
// caller: el éxito de la mutación nunca depende de la entrega del evento.
type Monitor struct {
	store    repository.InventoryRepository
	variants repository.VariantRepository
	policy   *threshold.Policy
	detector *threshold.Detector
	bus      EventBus
	cache    LevelCache
	log      *logger.Logger
}

// NewMonitor construye el monitor de inventario.
func NewMonitor(
	store repository.InventoryRepository,
	variants repository.VariantRepository,
	policy *threshold.Policy,
	bus EventBus,
	cache LevelCache,
	log *logger.Logger,
) *Monitor {
	return &Monitor{
		store:    store,
		variants: variants,
		policy:   policy,
		detector: threshold.NewDetector(policy),
		bus:      bus,
		cache:    cache,
		log:      log,
	}
}

// AdjustInput entrada para un ajuste relativo de stock.
type AdjustInput struct {
	VariantID string
	StoreID   string
	Delta     int64
}

// SetInput entrada para fijar la cantidad absoluta de stock.
type SetInput struct {
	VariantID string
	StoreID   string
	Quantity  int64
}

// AdjustStock aplica un delta al stock de la variante. Errores de mutación
// (ErrInsufficientStock, ErrNotFound) se devuelven síncronos al caller sin
// entrar a la vía de eventos.
func (m *Monitor) AdjustStock(ctx context.Context, in AdjustInput) (*entity.InventoryRecord, error) {
	if in.VariantID == "" || in.StoreID == "" || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	variant, err := m.lookupVariant(ctx, in.VariantID, in.StoreID)
	if err != nil {
		return nil, err
	}

	mut, err := m.store.Adjust(ctx, in.VariantID, in.StoreID, in.Delta)
	if err != nil {
		return nil, err
	}
	m.afterMutation(ctx, variant, mut)
	return mut.Record, nil
}

// SetStock fija la cantidad absoluta; crea el registro si no existe.
func (m *Monitor) SetStock(ctx context.Context, in SetInput) (*entity.InventoryRecord, error) {
	if in.VariantID == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	variant, err := m.lookupVariant(ctx, in.VariantID, in.StoreID)
	if err != nil {
		return nil, err
	}

	mut, err := m.store.Set(ctx, in.VariantID, in.StoreID, in.Quantity)
	if err != nil {
		return nil, err
	}
	m.afterMutation(ctx, variant, mut)
	return mut.Record, nil
}

// GetStock lee el nivel actual, pasando por la caché de niveles.
func (m *Monitor) GetStock(ctx context.Context, variantID, storeID string) (*entity.InventoryRecord, error) {
	if variantID == "" || storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if rec, ok := m.cache.Get(ctx, variantID, storeID); ok {
		return rec, nil
	}
	rec, err := m.store.Get(ctx, variantID, storeID)
	if err != nil {
		return nil, err
	}
	m.cache.Set(ctx, rec)
	return rec, nil
}

// LowStockItem nivel por debajo del umbral, con los umbrales resueltos.
type LowStockItem struct {
	VariantID         string
	SKU               string
	ProductName       string
	Category          string
	Quantity          int64
	Severity          entity.Severity
	LowStockThreshold int
	CriticalThreshold int
}

// ListLowStock devuelve las variantes de la tienda cuyo stock está en o bajo
// el umbral de su categoría, peores primero.
func (m *Monitor) ListLowStock(ctx context.Context, storeID string, limit, offset int) ([]LowStockItem, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := m.store.ListLevels(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0, len(rows))
	for _, row := range rows {
		sev := m.policy.Classify(row.Record.Quantity, row.Category)
		if sev == entity.SeverityNormal {
			continue
		}
		items = append(items, LowStockItem{
			VariantID:         row.Record.VariantID,
			SKU:               row.SKU,
			ProductName:       row.ProductName,
			Category:          row.Category,
			Quantity:          row.Record.Quantity,
			Severity:          sev,
			LowStockThreshold: m.policy.LowStockThreshold(row.Category),
			CriticalThreshold: m.policy.CriticalThreshold(row.Category),
		})
	}
	// Peores primero (agotado → crítico → bajo); a igual severidad, menor cantidad primero
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity != items[j].Severity {
			return items[i].Severity.WorseThan(items[j].Severity)
		}
		return items[i].Quantity < items[j].Quantity
	})
	return items, nil
}

// lookupVariant resuelve los metadatos de la variante y valida el alcance de
// tienda (una tienda no opera stock de variantes ajenas).
func (m *Monitor) lookupVariant(ctx context.Context, variantID, storeID string) (*entity.Variant, error) {
	variant, err := m.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if variant.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return variant, nil
}

// afterMutation refresca la caché, corre el detector y publica el evento si
// hubo cruce. Cualquier falla aquí se registra y se traga: la mutación ya
// quedó confirmada y no puede revertirse por un problema de notificación.
func (m *Monitor) afterMutation(ctx context.Context, variant *entity.Variant, mut *repository.Mutation) {
	m.cache.Set(ctx, mut.Record)

	ev := m.detector.Detect(mut.Previous, mut.Record.Quantity, threshold.EventMeta{
		VariantID:   variant.ID,
		StoreID:     variant.StoreID,
		SKU:         variant.SKU,
		ProductName: variant.ProductName,
		Category:    variant.Category,
	})
	if ev == nil {
		return
	}
	if err := m.bus.Publish(ctx, ev.Topic(), ev); err != nil {
		m.log.Warn().
			Err(err).
			Str("topic", ev.Topic()).
			Str("variant_id", ev.VariantID).
			Str("severity", string(ev.Severity)).
			Msg("no se pudo publicar el evento de cruce de umbral")
		return
	}
	m.log.Info().
		Str("topic", ev.Topic()).
		Str("variant_id", ev.VariantID).
		Str("sku", ev.SKU).
		Int64("previous", ev.PreviousQuantity).
		Int64("new", ev.NewQuantity).
		Msg("cruce de umbral detectado")
}
