package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVariantRequest body para POST /api/variants.
type CreateVariantRequest struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// VariantResponse representación HTTP de una variante.
type VariantResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
