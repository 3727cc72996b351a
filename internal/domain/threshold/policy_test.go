package threshold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/threshold"
)

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de umbrales: override de categoría → global configurado →
// default constante (10).
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockThreshold_OverridePorCategoria(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{
		Default:    20,
		Categories: map[string]int{"electronics": 15},
	})

	assert.Equal(t, 15, p.LowStockThreshold("electronics"),
		"el override de categoría debe ganar aunque exista un global distinto")
	assert.Equal(t, 20, p.LowStockThreshold("unknown-category"),
		"categoría sin override debe caer al global configurado")
	assert.Equal(t, 20, p.LowStockThreshold(""),
		"sin categoría debe usarse el global configurado")
}

func TestLowStockThreshold_DefaultConstante(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{})
	assert.Equal(t, threshold.DefaultLowStock, p.LowStockThreshold("ropa"),
		"sin global configurado debe usarse el default constante")
}

func TestLowStockThreshold_CategoriaInsensibleAMayusculas(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{
		Categories: map[string]int{"Electrónica": 15},
	})

	assert.Equal(t, 15, p.LowStockThreshold("electrónica"))
	assert.Equal(t, 15, p.LowStockThreshold("ELECTRÓNICA"))
	assert.Equal(t, 15, p.LowStockThreshold("  Electrónica "))
}

func TestCriticalThreshold_MitadEntera(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{
		Default:    10,
		Categories: map[string]int{"libros": 7},
	})

	assert.Equal(t, 5, p.CriticalThreshold(""),
		"crítico = floor(low/2)")
	assert.Equal(t, 3, p.CriticalThreshold("libros"),
		"floor(7/2) = 3; el crítico nunca supera al bajo")
	assert.LessOrEqual(t, p.CriticalThreshold("libros"), p.LowStockThreshold("libros"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación por bandas: <=0 agotado, (0,crit] crítico, (crit,low] bajo,
// resto normal.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Bandas(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{Default: 10}) // crítico = 5

	cases := []struct {
		qty  int64
		want entity.Severity
	}{
		{-3, entity.SeverityOutOfStock},
		{0, entity.SeverityOutOfStock},
		{1, entity.SeverityCritical},
		{5, entity.SeverityCritical}, // borde: exactamente el crítico
		{6, entity.SeverityLow},
		{10, entity.SeverityLow}, // borde: exactamente el bajo
		{11, entity.SeverityNormal},
		{1000, entity.SeverityNormal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.Classify(c.qty, ""), "cantidad %d", c.qty)
	}
}

func TestClassify_Determinista(t *testing.T) {
	p := threshold.NewPolicy(threshold.Config{Default: 12, Categories: map[string]int{"hogar": 8}})
	for i := 0; i < 3; i++ {
		assert.Equal(t, p.Classify(4, "hogar"), p.Classify(4, "hogar"),
			"misma entrada debe producir siempre la misma clasificación")
	}
}

func TestSeverity_Orden(t *testing.T) {
	assert.True(t, entity.SeverityOutOfStock.WorseThan(entity.SeverityCritical))
	assert.True(t, entity.SeverityCritical.WorseThan(entity.SeverityLow))
	assert.True(t, entity.SeverityLow.WorseThan(entity.SeverityNormal))
	assert.False(t, entity.SeverityNormal.WorseThan(entity.SeverityNormal))
	assert.False(t, entity.SeverityLow.WorseThan(entity.SeverityOutOfStock))
}
