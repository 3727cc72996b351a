package entity

import "time"

// Estados del ciclo de entrega de una notificación.
// Delivered y DeadLettered son terminales; Failed es terminal solo cuando
// se agotan los reintentos (pasa de inmediato a DeadLettered).
const (
	NotificationStatusPending      = "pending"
	NotificationStatusSent         = "sent"
	NotificationStatusDelivered    = "delivered"
	NotificationStatusFailed       = "failed"
	NotificationStatusDeadLettered = "dead_lettered"
)

// NotificationLog es el registro de auditoría de una notificación: un log por
// notificación, mutado en cada intento de entrega.
type NotificationLog struct {
	ID            string
	Channel       string // email, sms, push
	Recipient     string
	Subject       string
	Payload       string // payload serializado (JSON) para revisión manual
	Status        string
	AttemptNumber int
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
