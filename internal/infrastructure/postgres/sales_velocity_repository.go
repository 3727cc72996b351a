package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/vendora-api/internal/application/notification"
)

var _ notification.SalesVelocity = (*SalesVelocityRepo)(nil)

// SalesVelocityRepo calcula la velocidad de venta semanal de una variante a
// partir de los ítems de orden de los últimos 28 días.
type SalesVelocityRepo struct {
	q Querier
}

// NewSalesVelocityRepository construye el adaptador de velocidad de venta.
func NewSalesVelocityRepository(q Querier) *SalesVelocityRepo {
	return &SalesVelocityRepo{q: q}
}

// WeeklyUnitsSold devuelve el promedio semanal de unidades vendidas
// (ventana de 28 días / 4). Cero si no hay ventas en la ventana.
func (r *SalesVelocityRepo) WeeklyUnitsSold(ctx context.Context, variantID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.variant_id = $1
		  AND o.created_at >= NOW() - INTERVAL '28 days'`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, variantID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("weekly units sold: %w", err)
	}
	return total.Div(decimal.NewFromInt(4)), nil
}
