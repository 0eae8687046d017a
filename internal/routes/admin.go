package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmvest/farmvest/internal/content"
	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/payout"
)

// RegisterAdminRoutes wires the admin endpoints for farm operations and
// payout settlement.
func RegisterAdminRoutes(r fiber.Router, farmHandler *farm.Handler, payoutHandler *payout.Handler, contentHandler *content.Handler) {
	r.Post("/farms", farmHandler.CreateFarm)
	r.Get("/farms", farmHandler.ListFarms)
	r.Post("/batches", farmHandler.CreateBatch)
	r.Get("/batches", farmHandler.ListBatches)
	r.Post("/batches/:batchId/activate", farmHandler.Activate)
	r.Post("/batches/:batchId/harvest", farmHandler.Harvest)
	r.Get("/payouts/:batchId/simulate", payoutHandler.Simulate)
	r.Post("/payouts/:batchId/execute", payoutHandler.Execute)
	r.Post("/seed", contentHandler.Seed)
}
