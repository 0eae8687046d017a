package farm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes admin endpoints for farms and batches.
type Handler struct {
	service *Service
}

// NewHandler builds a farm HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type farmRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// CreateFarm registers a new production site.
func (h *Handler) CreateFarm(c *fiber.Ctx) error {
	var req farmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	f, err := h.service.CreateFarm(c.UserContext(), FarmInput{Name: req.Name, Location: req.Location, Notes: req.Notes})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toFarmResponse(f))
}

// ListFarms returns all farms.
func (h *Handler) ListFarms(c *fiber.Ctx) error {
	farms, err := h.service.ListFarms(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]fiber.Map, 0, len(farms))
	for _, f := range farms {
		out = append(out, toFarmResponse(f))
	}
	return c.Status(http.StatusOK).JSON(out)
}

type batchRequest struct {
	FarmID        string           `json:"farm_id"`
	ProductType   string           `json:"product_type"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	TargetUnits   int64            `json:"target_units"`
	FeedPrice     decimal.Decimal  `json:"feed_price"`
	MortalityRate decimal.Decimal  `json:"mortality_rate"`
	ExpectedROI   *decimal.Decimal `json:"expected_roi"`
}

// CreateBatch opens a new production run for investment.
func (h *Handler) CreateBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	b, err := h.service.CreateBatch(c.UserContext(), BatchInput{
		FarmID:        req.FarmID,
		ProductType:   req.ProductType,
		UnitPrice:     req.UnitPrice,
		TargetUnits:   req.TargetUnits,
		FeedPrice:     req.FeedPrice,
		MortalityRate: req.MortalityRate,
		ExpectedROI:   req.ExpectedROI,
	})
	if err != nil {
		if errors.Is(err, ErrFarmNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toBatchResponse(b))
}

// ListBatches returns all batches.
func (h *Handler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.service.ListBatches(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toBatchList(batches))
}

// OpenBatches returns batches investors can currently buy into.
func (h *Handler) OpenBatches(c *fiber.Ctx) error {
	batches, err := h.service.OpenBatches(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toBatchList(batches))
}

// Activate transitions a batch to ACTIVE.
func (h *Handler) Activate(c *fiber.Ctx) error {
	return h.transition(c, h.service.Activate)
}

// Harvest transitions a batch to HARVESTED.
func (h *Handler) Harvest(c *fiber.Ctx) error {
	return h.transition(c, h.service.Harvest)
}

func (h *Handler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) error) error {
	batchID := c.Params("batchId")
	if err := fn(c.UserContext(), batchID); err != nil {
		if errors.Is(err, ErrBatchNotFound) {
			return fiber.NewError(http.StatusNotFound, "batch not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "batch_id": batchID})
}

func toFarmResponse(f Farm) fiber.Map {
	return fiber.Map{
		"id":         f.ID,
		"name":       f.Name,
		"location":   f.Location,
		"notes":      f.Notes,
		"created_at": f.CreatedAt.Format(time.RFC3339),
	}
}

func toBatchResponse(b Batch) fiber.Map {
	return fiber.Map{
		"id":             b.ID,
		"farm_id":        b.FarmID,
		"product_type":   b.ProductType,
		"status":         b.Status,
		"unit_price":     b.UnitPrice,
		"target_units":   b.TargetUnits,
		"units_placed":   b.UnitsPlaced,
		"feed_price":     b.FeedPrice,
		"mortality_rate": b.MortalityRate,
		"expected_roi":   b.ExpectedROI,
		"created_at":     b.CreatedAt.Format(time.RFC3339),
	}
}

func toBatchList(batches []Batch) []fiber.Map {
	out := make([]fiber.Map, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out
}
