package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/homestay/rental-service/internal/config"
)

func TestNewRedis_WithoutAddrIsDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	r := NewRedis(config.RedisConfig{}, zap.New(core))
	require.False(t, r.Enabled())
	assert.Equal(t, 1, logs.FilterMessageSnippet("REDIS_ADDR").Len())

	_, _, err := r.IncrWindow(context.Background(), "rl:login:ip:1.2.3.4", time.Minute)
	require.Error(t, err)
	require.Error(t, r.Ping(context.Background()))
	r.Close()
}

func TestNewRedis_WithAddrIsEnabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{
		Addr:              "127.0.0.1:1",
		DialTimeoutMillis: 50,
		MaxRetries:        -1,
	}, zap.NewNop())
	defer r.Close()

	require.True(t, r.Enabled())
	assert.Equal(t, 50*time.Millisecond, r.Client.Options().DialTimeout)
}
