package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa una variante de producto publicada por una tienda
// (el SKU vendible; talla/color/presentación concreta de un producto).
type Variant struct {
	ID          string
	StoreID     string
	SKU         string
	ProductName string
	Category    string // usada para resolver umbrales de stock por categoría
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
