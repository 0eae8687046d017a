package payout

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/investment"
)

// Handler exposes payout simulation and settlement endpoints.
type Handler struct {
	engine      *Engine
	farms       *farm.Service
	investments *investment.Service
}

// NewHandler builds a payout HTTP handler.
func NewHandler(engine *Engine, farms *farm.Service, investments *investment.Service) *Handler {
	return &Handler{engine: engine, farms: farms, investments: investments}
}

// Simulate computes the projected total payout for a batch without writes.
func (h *Handler) Simulate(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	batch, err := h.farms.Get(c.UserContext(), batchID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "batch not found")
	}

	investments, err := h.investments.ListByBatch(c.UserContext(), batch.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.engine.Simulate(&batch, investments)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"batch_id":        batch.ID,
		"simulated_total": total,
	})
}

type executeRequest struct {
	ROIOverride *decimal.Decimal `json:"roi_override"`
}

type payoutResponse struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investment_id"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         string          `json:"kind"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Execute settles the batch payout, creating one record per eligible investment.
func (h *Handler) Execute(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	batch, err := h.farms.Get(c.UserContext(), batchID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "batch not found")
	}

	var req executeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	investments, err := h.investments.ListByBatch(c.UserContext(), batch.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	created, err := h.engine.Execute(c.UserContext(), &batch, investments, req.ROIOverride)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrPersistence):
			return fiber.NewError(http.StatusInternalServerError, "payout settlement failed")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	out := make([]payoutResponse, 0, len(created))
	for _, p := range created {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"batch_id": batch.ID,
		"count":    len(created),
		"payouts":  out,
	})
}

// ListForInvestment returns the payouts for one of the caller's investments.
func (h *Handler) ListForInvestment(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	investmentID := c.Params("investmentId")

	inv, err := h.investments.Get(c.UserContext(), investmentID)
	if err != nil || inv.UserID != userID {
		return fiber.NewError(http.StatusNotFound, "investment not found")
	}

	payouts, err := h.engine.ListByInvestment(c.UserContext(), inv.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]payoutResponse, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toResponse(p Payout) payoutResponse {
	return payoutResponse{
		ID:           p.ID,
		InvestmentID: p.InvestmentID,
		Amount:       p.Amount,
		Kind:         p.Kind,
		CreatedAt:    p.CreatedAt,
	}
}
