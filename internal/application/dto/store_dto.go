package dto

import "time"

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreResponse representación HTTP de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
