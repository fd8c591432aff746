package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homestay/rental-service/internal/domain"
)

// MemoryStore keeps users in process memory. It is used when no Postgres DSN
// is configured and as the store behind service tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// SetClock replaces the time source used for CreatedAt and UpdatedAt.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Insert(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateKey
	}

	now := s.now().UTC()
	user.ID = uuid.NewString()
	user.Favorites = []string{}
	user.CreatedAt = now
	user.UpdatedAt = now

	s.byID[user.ID] = cloneUser(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) UpdatePartial(_ context.Context, id string, changes domain.ProfileChanges) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.Apply(changes)
	if now := s.now().UTC(); now.After(user.UpdatedAt) {
		user.UpdatedAt = now
	}
	return cloneUser(user), nil
}

// Delete removes a user. Nothing in the HTTP surface deletes accounts; tests
// use it to simulate a user disappearing behind a live token.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byID[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.byID, id)
	}
}

func cloneUser(u *domain.User) *domain.User {
	out := *u
	out.Phone = cloneString(u.Phone)
	out.Gender = cloneString(u.Gender)
	out.Dob = cloneString(u.Dob)
	out.Address = cloneString(u.Address)
	out.Avatar = cloneString(u.Avatar)
	out.Favorites = append([]string{}, u.Favorites...)
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ CredentialStore = (*MemoryStore)(nil)
