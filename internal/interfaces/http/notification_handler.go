package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/vendora-api/internal/application/dto"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

// NotificationHandler expone el log de auditoría de notificaciones para
// revisión del operador (incluidas las dead-letters).
type NotificationHandler struct {
	logs repository.NotificationLogRepository
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(logs repository.NotificationLogRepository) *NotificationHandler {
	return &NotificationHandler{logs: logs}
}

// List devuelve los logs de notificación, filtrables por ?status=.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return h.list(c, c.Query("status"))
}

// DeadLetters devuelve las notificaciones agotadas que requieren
// intervención manual.
func (h *NotificationHandler) DeadLetters(c *fiber.Ctx) error {
	return h.list(c, entity.NotificationStatusDeadLettered)
}

func (h *NotificationHandler) list(c *fiber.Ctx, status string) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	logs, err := h.logs.ListByStatus(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.NotificationLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.NotificationLogDTO{
			ID:            l.ID,
			Channel:       l.Channel,
			Recipient:     l.Recipient,
			Subject:       l.Subject,
			Status:        l.Status,
			AttemptNumber: l.AttemptNumber,
			LastError:     l.LastError,
			CreatedAt:     l.CreatedAt,
			UpdatedAt:     l.UpdatedAt,
		})
	}
	return c.JSON(out)
}
