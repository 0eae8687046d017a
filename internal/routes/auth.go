package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmvest/farmvest/internal/auth"
)

// RegisterAuthRoutes wires registration and login endpoints. The rate limiter
// guards the login endpoint only.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", rateLimiter, h.Login)
}
