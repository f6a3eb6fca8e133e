package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
)

const roleContextKey = "currentUserRole"

// RequireRoles resolves the caller's role and rejects the request unless it
// is in the allowed set. Lookups go through the role cache first and fall
// back to the users table.
func RequireRoles(db *gorm.DB, roles *services.RoleCache, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := GetCurrentEmail(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		role, err := ResolveRole(c, db, roles, email)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusForbidden, "unknown user")
			}
			return err
		}

		for _, want := range allowed {
			if role == want {
				c.Locals(roleContextKey, role)
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// ResolveRole returns the role for an identity, memoizing hits in the cache.
func ResolveRole(c *fiber.Ctx, db *gorm.DB, roles *services.RoleCache, email string) (string, error) {
	if role, err := roles.Get(c.Context(), email); err == nil && role != "" {
		return role, nil
	}

	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return "", err
	}

	_ = roles.Set(c.Context(), email, user.Role)
	return user.Role, nil
}

// GetCurrentRole extracts the resolved role from context.
func GetCurrentRole(c *fiber.Ctx) (string, bool) {
	value := c.Locals(roleContextKey)
	if value == nil {
		return "", false
	}

	if role, ok := value.(string); ok && role != "" {
		return role, true
	}

	return "", false
}
