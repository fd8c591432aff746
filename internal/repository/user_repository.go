package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/homestay/rental-service/internal/auth"
	"github.com/homestay/rental-service/internal/domain"
)

// UserRepository exposes account operations over a CredentialStore.
type UserRepository struct {
	store      CredentialStore
	bcryptCost int
}

// NewUserRepository wraps store. bcryptCost outside bcrypt's range falls back to the default.
func NewUserRepository(store CredentialStore, bcryptCost int) *UserRepository {
	return &UserRepository{store: store, bcryptCost: bcryptCost}
}

// CreateUser hashes the password and inserts the user. The returned record
// carries the hash; callers must not forward it.
func (r *UserRepository) CreateUser(ctx context.Context, name, email, password string, phone *string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
	}
	if err := r.store.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when password matches the stored hash. An
// unknown email and a wrong password both yield (nil, false, nil).
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := r.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	ok, err := auth.PasswordMatches(user.PasswordHash, password)
	if err != nil {
		return nil, false, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return user, true, nil
}

// VerifyCredentials reports whether password is correct for email.
func (r *UserRepository) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	_, ok, err := r.Authenticate(ctx, email, password)
	return ok, err
}

// GetByID loads a user or returns domain.ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the allow-listed fields of raw. With no recognized
// field it returns the current record without touching UpdatedAt.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, raw map[string]any) (*domain.User, error) {
	changes := domain.FilterProfileFields(raw)
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}

	user, err := r.store.UpdatePartial(ctx, id, changes)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
