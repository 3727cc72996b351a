package dto

import "time"

// NotificationLogDTO registro de auditoría de una notificación.
type NotificationLogDTO struct {
	ID            string    `json:"id"`
	Channel       string    `json:"channel"`
	Recipient     string    `json:"recipient"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	AttemptNumber int       `json:"attempt_number"`
	LastError     string    `json:"last_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
