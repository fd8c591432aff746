package repository

import (
	"context"
	"errors"

	"github.com/homestay/rental-service/internal/domain"
)

// Store level errors.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("record not found")
)

// CredentialStore is the durable table of user records, unique by email.
type CredentialStore interface {
	// Insert stores the user and fills ID, Favorites, CreatedAt and UpdatedAt.
	// It returns ErrDuplicateKey when the email is taken.
	Insert(ctx context.Context, user *domain.User) error
	// FindByEmail matches the email exactly as stored.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePartial writes only the given fields and always refreshes UpdatedAt.
	UpdatePartial(ctx context.Context, id string, changes domain.ProfileChanges) (*domain.User, error)
}
