package entity

import "time"

// InventoryRecord representa el stock actual de una variante en una tienda.
// La cantidad nunca es negativa: un ajuste que la dejaría bajo cero se
// rechaza completo, sin aplicación parcial.
type InventoryRecord struct {
	VariantID       string
	StoreID         string
	Quantity        int64
	LastRestockedAt *time.Time // última entrada de stock; nil si nunca se repuso
	UpdatedAt       time.Time
}
