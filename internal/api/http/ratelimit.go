package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/homestay/rental-service/pkg/util"
)

// AttemptCounter counts hits on a key inside a fixed window.
type AttemptCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// LoginRateLimiter caps login attempts per client IP. Counter errors let the
// request through.
func LoginRateLimiter(counter AttemptCounter, max int, window time.Duration, logger *zap.Logger) fiber.Handler {
	if counter == nil || max <= 0 || window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		key := "rl:login:ip:" + c.IP()

		count, ttl, err := counter.IncrWindow(c.UserContext(), key, window)
		if err != nil {
			logger.Debug("login rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		remaining := max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetSec := int(ttl.Seconds())
		c.Set("X-RateLimit-Limit", strconv.Itoa(max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if int(count) > max {
			if resetSec > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(resetSec))
			}
			return apperrors.NewTooManyRequests("too many login attempts")
		}
		return c.Next()
	}
}
