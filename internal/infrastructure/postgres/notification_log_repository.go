package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

var _ repository.NotificationLogRepository = (*NotificationLogRepo)(nil)

// NotificationLogRepo implementación de NotificationLogRepository sobre PostgreSQL.
type NotificationLogRepo struct {
	q Querier
}

// NewNotificationLogRepository construye el adaptador del log de notificaciones.
func NewNotificationLogRepository(q Querier) *NotificationLogRepo {
	return &NotificationLogRepo{q: q}
}

// Create inserta el registro inicial de la notificación (status pending).
func (r *NotificationLogRepo) Create(ctx context.Context, log *entity.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (id, channel, recipient, subject, payload, status, attempt_number, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.Channel, log.Recipient, log.Subject, log.Payload,
		log.Status, log.AttemptNumber, log.LastError, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification log: %w", err)
	}
	return nil
}

// UpdateStatus actualiza el estado tras un intento de entrega. El guard sobre
// attempt_number evita que un intento anterior pise uno posterior.
func (r *NotificationLogRepo) UpdateStatus(ctx context.Context, id, status string, attemptNumber int, lastError string) error {
	query := `
		UPDATE notification_logs
		SET status = $2, attempt_number = $3, last_error = $4, updated_at = NOW()
		WHERE id = $1 AND attempt_number <= $3`
	_, err := r.q.Exec(ctx, query, id, status, attemptNumber, lastError)
	if err != nil {
		return fmt.Errorf("update notification log: %w", err)
	}
	return nil
}

// ListByStatus lista los logs filtrados por estado (vacío = todos), más
// recientes primero.
func (r *NotificationLogRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.NotificationLog, error) {
	query := `
		SELECT id, channel, recipient, subject, payload, status, attempt_number, last_error, created_at, updated_at
		FROM notification_logs
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.NotificationLog
	for rows.Next() {
		var l entity.NotificationLog
		if err := rows.Scan(
			&l.ID, &l.Channel, &l.Recipient, &l.Subject, &l.Payload,
			&l.Status, &l.AttemptNumber, &l.LastError, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
