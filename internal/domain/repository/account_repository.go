package repository

import (
	"context"
	"errors"

	"account-service/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Insert when the email is already taken.
// It is detected from the store's uniqueness constraint rather than a
// pre-check, so concurrent registrations cannot race past it.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines the persistence contract for accounts.
// Lookups report absence as (nil, nil); an error always means the store
// itself failed.
type AccountRepository interface {
	Insert(ctx context.Context, name, email, passwordHash string) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// UpdateName reports false when no account with id exists; that is a
	// no-op, not an error.
	UpdateName(ctx context.Context, id int64, name string) (bool, error)
}
