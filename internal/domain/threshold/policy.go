package threshold

import (
	"strings"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultLowStock umbral de stock bajo cuando no hay configuración global
// ni override de categoría.
const DefaultLowStock = 10

// Config configuración de umbrales, inyectada al construir la Policy
// (nunca un singleton de proceso; permite tests con configuraciones aisladas).
type Config struct {
	Default    int            // umbral global configurado; <= 0 usa DefaultLowStock
	Categories map[string]int // overrides por categoría (claves insensibles a mayúsculas/acentos)
}

// Policy resuelve los umbrales de stock bajo/crítico por categoría.
// Servicio de dominio puro: sin I/O, determinista para entradas iguales.
type Policy struct {
	global     int
	categories map[string]int
}

// NewPolicy construye la política normalizando las claves de categoría.
func NewPolicy(cfg Config) *Policy {
	global := cfg.Default
	if global <= 0 {
		global = DefaultLowStock
	}
	categories := make(map[string]int, len(cfg.Categories))
	for cat, v := range cfg.Categories {
		if v > 0 {
			categories[normalizeCategory(cat)] = v
		}
	}
	return &Policy{global: global, categories: categories}
}

// LowStockThreshold devuelve el umbral de stock bajo para la categoría:
// override de categoría → global configurado → DefaultLowStock.
func (p *Policy) LowStockThreshold(category string) int {
	if category != "" {
		if v, ok := p.categories[normalizeCategory(category)]; ok {
			return v
		}
	}
	return p.global
}

// CriticalThreshold es la mitad (entera) del umbral de stock bajo.
func (p *Policy) CriticalThreshold(category string) int {
	return p.LowStockThreshold(category) / 2
}

// Classify clasifica una cantidad según los umbrales de la categoría.
func (p *Policy) Classify(quantity int64, category string) entity.Severity {
	switch {
	case quantity <= 0:
		return entity.SeverityOutOfStock
	case quantity <= int64(p.CriticalThreshold(category)):
		return entity.SeverityCritical
	case quantity <= int64(p.LowStockThreshold(category)):
		return entity.SeverityLow
	default:
		return entity.SeverityNormal
	}
}

// normalizeCategory unifica las claves de categoría: NFC + case folding,
// para que "Electrónica", "electrónica" y "ELECTRÓNICA" resuelvan igual.
func normalizeCategory(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
