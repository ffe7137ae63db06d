package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/utils"
)

const userContextKey = "currentUserID"

// AuthMiddleware validates bearer tokens and checks the token still matches
// the persisted session, so a logout in one tab invalidates calls from every
// other holder of the token.
func AuthMiddleware(cfg *config.Config, sessions *core.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		session, ok := sessions.Current()
		if !ok || session.UserID != userID {
			return fiber.NewError(fiber.StatusUnauthorized, "session expired")
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (string, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return "", false
	}

	if id, ok := value.(string); ok {
		return id, true
	}

	return "", false
}
