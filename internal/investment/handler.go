package investment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/wallet"
)

// Handler exposes investor endpoints for purchasing and listing investments.
type Handler struct {
	service *Service
}

// NewHandler builds an investment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type purchaseRequest struct {
	BatchID string `json:"batch_id"`
	Units   int64  `json:"units"`
}

type investmentResponse struct {
	ID        string          `json:"id"`
	BatchID   string          `json:"batch_id"`
	Units     int64           `json:"units"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Create buys units of a batch funded from the caller's wallet.
func (h *Handler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	inv, err := h.service.Purchase(c.UserContext(), PurchaseInput{
		UserID:  userID,
		BatchID: req.BatchID,
		Units:   req.Units,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBatchUnavailable), errors.Is(err, farm.ErrBatchNotFound):
			return fiber.NewError(http.StatusBadRequest, "batch not available")
		case errors.Is(err, wallet.ErrInsufficientFunds), errors.Is(err, wallet.ErrNotFound):
			return fiber.NewError(http.StatusBadRequest, "insufficient wallet balance")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(inv))
}

// My lists the caller's investments, newest first.
func (h *Handler) My(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	investments, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		out = append(out, toResponse(inv))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toResponse(inv Investment) investmentResponse {
	return investmentResponse{
		ID:        inv.ID,
		BatchID:   inv.BatchID,
		Units:     inv.Units,
		Amount:    inv.Amount,
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
	}
}
