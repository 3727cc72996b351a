package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjust.
// Delta positivo repone; negativo descuenta. Cero se rechaza.
type AdjustStockRequest struct {
	VariantID string `json:"variant_id"`
	Delta     int64  `json:"delta"`
}

// SetStockRequest body para PUT /api/inventory/:variantID.
type SetStockRequest struct {
	Quantity int64 `json:"quantity"`
}

// InventoryLevelResponse nivel de stock de una variante.
type InventoryLevelResponse struct {
	VariantID       string     `json:"variant_id"`
	StoreID         string     `json:"store_id"`
	Quantity        int64      `json:"quantity"`
	LastRestockedAt *time.Time `json:"last_restocked_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LowStockItemDTO variante en o bajo su umbral, con los umbrales resueltos.
type LowStockItemDTO struct {
	VariantID         string `json:"variant_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	Category          string `json:"category,omitempty"`
	Quantity          int64  `json:"quantity"`
	Severity          string `json:"severity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	CriticalThreshold int    `json:"critical_threshold"`
}
