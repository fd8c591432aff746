package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.UserID)
		return errors.New("mail down")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.UserID)
		return nil
	})
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls = append(calls, "login")
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserRegistered, "u1", UserRegisteredPayload{Name: "Amy"}))
	require.EqualError(t, err, "mail down")
	require.Equal(t, []string{"first:u1", "second:u1"}, calls)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), New(EventUserLoggedIn, "u1", nil)))
}

func TestNewEvent(t *testing.T) {
	e := New(EventUserProfileUpdated, "u1", UserProfileUpdatedPayload{Fields: []string{"phone"}})
	require.NotEmpty(t, e.ID)
	require.Equal(t, "u1", e.UserID)
	require.False(t, e.Timestamp.IsZero())
}
