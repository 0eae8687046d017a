package farm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service manages farms and batch lifecycle.
type Service struct {
	repo Repository
}

// NewService builds a farm service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FarmInput captures data required to create a farm.
type FarmInput struct {
	Name     string
	Location string
	Notes    string
}

// CreateFarm registers a new production site.
func (s *Service) CreateFarm(ctx context.Context, input FarmInput) (Farm, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Farm{}, fmt.Errorf("farm name is required")
	}

	farm := Farm{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Location:  input.Location,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateFarm(ctx, farm); err != nil {
		return Farm{}, err
	}
	return farm, nil
}

// ListFarms returns all farms.
func (s *Service) ListFarms(ctx context.Context) ([]Farm, error) {
	return s.repo.ListFarms(ctx)
}

// BatchInput captures data required to open a batch for investment.
type BatchInput struct {
	FarmID        string
	ProductType   string
	UnitPrice     decimal.Decimal
	TargetUnits   int64
	FeedPrice     decimal.Decimal
	MortalityRate decimal.Decimal
	ExpectedROI   *decimal.Decimal
}

// CreateBatch registers a new production run in PLANNED status.
func (s *Service) CreateBatch(ctx context.Context, input BatchInput) (Batch, error) {
	ptype := strings.ToUpper(strings.TrimSpace(input.ProductType))
	if ptype != ProductEgg && ptype != ProductChicken {
		return Batch{}, fmt.Errorf("invalid product type %q", input.ProductType)
	}
	if !input.UnitPrice.IsPositive() {
		return Batch{}, fmt.Errorf("unit price must be positive")
	}
	if _, err := s.repo.GetFarm(ctx, input.FarmID); err != nil {
		return Batch{}, err
	}

	batch := Batch{
		ID:            uuid.New().String(),
		FarmID:        input.FarmID,
		ProductType:   ptype,
		Status:        StatusPlanned,
		UnitPrice:     input.UnitPrice,
		TargetUnits:   input.TargetUnits,
		FeedPrice:     input.FeedPrice,
		MortalityRate: input.MortalityRate,
		ExpectedROI:   input.ExpectedROI,
		StartDate:     time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

// Get fetches a batch by identifier.
func (s *Service) Get(ctx context.Context, id string) (Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

// ListBatches returns all batches, newest first.
func (s *Service) ListBatches(ctx context.Context) ([]Batch, error) {
	return s.repo.ListBatches(ctx)
}

// OpenBatches returns batches investors can currently buy into.
func (s *Service) OpenBatches(ctx context.Context) ([]Batch, error) {
	return s.repo.ListBatchesByStatus(ctx, StatusPlanned, StatusActive)
}

// Activate marks a batch as actively producing.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.repo.UpdateBatchStatus(ctx, id, StatusActive)
}

// Harvest marks a batch as harvested.
func (s *Service) Harvest(ctx context.Context, id string) error {
	return s.repo.UpdateBatchStatus(ctx, id, StatusHarvested)
}

// Close marks a batch as closed.
func (s *Service) Close(ctx context.Context, id string) error {
	return s.repo.UpdateBatchStatus(ctx, id, StatusClosed)
}
