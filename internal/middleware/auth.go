package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/farmvest/farmvest/internal/auth"
	"github.com/farmvest/farmvest/internal/config"
	"github.com/farmvest/farmvest/internal/identity"
)

// JWTAuth returns a middleware that validates bearer tokens and resolves the
// authenticated user. It stores user_id and is_admin in the request locals.
func JWTAuth(cfg config.Config, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.Verify(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}

		c.Locals("user_id", user.ID)
		c.Locals("is_admin", user.IsAdmin)
		return c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after JWTAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("is_admin").(bool)
		if !isAdmin {
			return fiber.NewError(http.StatusForbidden, "admin privileges required")
		}
		return c.Next()
	}
}
