package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmvest/farmvest/internal/content"
	"github.com/farmvest/farmvest/internal/farm"
)

// RegisterPublicRoutes wires the unauthenticated content and catalog endpoints.
func RegisterPublicRoutes(r fiber.Router, contentHandler *content.Handler, farmHandler *farm.Handler) {
	public := r.Group("/public")
	public.Get("/overview", contentHandler.Overview)
	public.Get("/products", farmHandler.OpenBatches)
	public.Get("/faq", contentHandler.FAQ)
	public.Get("/pages/:slug", contentHandler.Page)
}
