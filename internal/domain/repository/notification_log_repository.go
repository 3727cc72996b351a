package repository

import (
	"context"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
)

// NotificationLogRepository define el puerto del log de auditoría de
// notificaciones: un registro por notificación, actualizado en cada intento.
// Las actualizaciones de un mismo log deben secuenciarse por el llamador
// (un intento posterior nunca debe ser sobreescrito por uno anterior).
type NotificationLogRepository interface {
	Create(ctx context.Context, log *entity.NotificationLog) error
	UpdateStatus(ctx context.Context, id, status string, attemptNumber int, lastError string) error
	// ListByStatus con status vacío lista todos los logs, más recientes primero.
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.NotificationLog, error)
}
