package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay/rental-service/internal/domain"
)

func TestMemoryStore_InsertAndFind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &domain.User{Name: "Amy", Email: "amy@x.com", PasswordHash: "hash"}
	require.NoError(t, store.Insert(ctx, user))
	require.NotEmpty(t, user.ID)
	require.Equal(t, user.CreatedAt, user.UpdatedAt)
	require.NotNil(t, user.Favorites)

	byEmail, err := store.FindByEmail(ctx, "amy@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "amy@x.com", byID.Email)

	_, err = store.FindByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.User{Name: "Amy", Email: "amy@x.com"}))
	err := store.Insert(ctx, &domain.User{Name: "Other", Email: "amy@x.com"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	stored, err := store.FindByEmail(ctx, "amy@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Amy", stored.Name)
}

func TestMemoryStore_EmailLookupIsCaseSensitive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.User{Name: "Amy", Email: "A@x.com"}))
	_, err := store.FindByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentInsertSameEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, dup atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Insert(ctx, &domain.User{Name: "Amy", Email: "amy@x.com"})
			switch err {
			case nil:
				ok.Add(1)
			case ErrDuplicateKey:
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, 19, dup.Load())
}

func TestMemoryStore_UpdatePartial(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return clock })

	user := &domain.User{Name: "Amy", Email: "amy@x.com"}
	require.NoError(t, store.Insert(ctx, user))

	clock = clock.Add(time.Minute)
	updated, err := store.UpdatePartial(ctx, user.ID, domain.ProfileChanges{domain.ProfilePhone: "5551234"})
	require.NoError(t, err)
	assert.Equal(t, "5551234", *updated.Phone)
	assert.Equal(t, "Amy", updated.Name)
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = store.UpdatePartial(ctx, "missing", domain.ProfileChanges{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &domain.User{Name: "Amy", Email: "amy@x.com"}
	require.NoError(t, store.Insert(ctx, user))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.Name = "Mutated"

	again, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amy", again.Name)
}
