package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/vendora-api/internal/application/dto"
	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// InventoryHandler expone las operaciones de stock de la tienda autenticada.
type InventoryHandler struct {
	monitor *inventory.Monitor
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(monitor *inventory.Monitor) *InventoryHandler {
	return &InventoryHandler{monitor: monitor}
}

// Adjust aplica un delta relativo al stock de una variante.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.monitor.AdjustStock(c.Context(), inventory.AdjustInput{
		VariantID: in.VariantID,
		StoreID:   GetStoreID(c),
		Delta:     in.Delta,
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(toLevelResponse(rec))
}

// Set fija la cantidad absoluta de stock de una variante.
func (h *InventoryHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.monitor.SetStock(c.Context(), inventory.SetInput{
		VariantID: c.Params("variantID"),
		StoreID:   GetStoreID(c),
		Quantity:  in.Quantity,
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(toLevelResponse(rec))
}

// Get devuelve el nivel actual de stock de una variante.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.monitor.GetStock(c.Context(), c.Params("variantID"), GetStoreID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(toLevelResponse(rec))
}

// LowStock lista las variantes en o bajo su umbral, peores primero.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	items, err := h.monitor.ListLowStock(c.Context(), GetStoreID(c), page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			VariantID:         it.VariantID,
			SKU:               it.SKU,
			ProductName:       it.ProductName,
			Category:          it.Category,
			Quantity:          it.Quantity,
			Severity:          string(it.Severity),
			LowStockThreshold: it.LowStockThreshold,
			CriticalThreshold: it.CriticalThreshold,
		})
	}
	return c.JSON(out)
}

// inventoryError mapea los errores de dominio del monitor a HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variant_id es requerido y delta no puede ser cero"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad no puede ser negativa"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el ajuste dejaría el stock en negativo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante o nivel de stock no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la variante pertenece a otra tienda"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toLevelResponse(rec *entity.InventoryRecord) dto.InventoryLevelResponse {
	return dto.InventoryLevelResponse{
		VariantID:       rec.VariantID,
		StoreID:         rec.StoreID,
		Quantity:        rec.Quantity,
		LastRestockedAt: rec.LastRestockedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}
