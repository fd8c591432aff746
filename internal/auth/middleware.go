package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/homestay/rental-service/pkg/util"
)

const bearerTokenKey = "auth_bearer_token"

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return token, nil
}

// RequireBearer rejects requests without a well-formed bearer token and
// stores the raw token for handlers. Signature checks happen in the service.
func RequireBearer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(bearerTokenKey, token)
		return c.Next()
	}
}

// TokenFromContext retrieves the bearer token stored by RequireBearer.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(bearerTokenKey).(string)
	return token, ok && token != ""
}
