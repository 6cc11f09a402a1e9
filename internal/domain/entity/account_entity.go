package entity

import (
	"time"
)

// Account is the aggregate root for the account domain.
// PasswordHash holds a bcrypt digest and must never be serialized outward.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
