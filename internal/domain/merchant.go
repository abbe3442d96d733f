package domain

import "time"

// Merchant is an authenticated account that owns resources.
type Merchant struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
