package entity

import "time"

// Store representa una tienda (vendedor) del marketplace.
type Store struct {
	ID        string
	Name      string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
