package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/aegislife/internal/config"
	"github.com/example/aegislife/internal/utils"
)

const identityContextKey = "currentUserEmail"

// AuthMiddleware validates bearer JWTs and loads the caller's email identity
// into context. A missing or rejected credential ends the request with 401,
// which the client treats as a forced sign-out.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		email, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(identityContextKey, email)
		return c.Next()
	}
}

// GetCurrentEmail extracts the authenticated identity from context.
func GetCurrentEmail(c *fiber.Ctx) (string, bool) {
	value := c.Locals(identityContextKey)
	if value == nil {
		return "", false
	}

	if email, ok := value.(string); ok && email != "" {
		return email, true
	}

	return "", false
}
