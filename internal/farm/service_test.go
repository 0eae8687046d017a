package farm

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateBatchLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.CreateFarm(ctx, FarmInput{Name: "Green Acres", Location: "Brazzaville"})
	if err != nil {
		t.Fatalf("create farm: %v", err)
	}

	roi := decimal.NewFromFloat(0.12)
	batch, err := svc.CreateBatch(ctx, BatchInput{
		FarmID:      f.ID,
		ProductType: "chicken",
		UnitPrice:   decimal.NewFromInt(50),
		TargetUnits: 100,
		ExpectedROI: &roi,
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if batch.Status != StatusPlanned {
		t.Fatalf("expected PLANNED batch, got %s", batch.Status)
	}
	if batch.ProductType != ProductChicken {
		t.Fatalf("expected product type normalised, got %s", batch.ProductType)
	}
	if !batch.Open() {
		t.Fatal("planned batch should accept investment")
	}

	if err := svc.Activate(ctx, batch.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	got, err := svc.Get(ctx, batch.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("expected ACTIVE, got %s", got.Status)
	}

	if err := svc.Harvest(ctx, batch.ID); err != nil {
		t.Fatalf("harvest: %v", err)
	}
	got, _ = svc.Get(ctx, batch.ID)
	if got.Status != StatusHarvested {
		t.Fatalf("expected HARVESTED, got %s", got.Status)
	}
	if got.Open() {
		t.Fatal("harvested batch must not accept investment")
	}
}

func TestCreateBatchValidation(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.CreateFarm(ctx, FarmInput{Name: "Green Acres"})
	if err != nil {
		t.Fatalf("create farm: %v", err)
	}

	if _, err := svc.CreateBatch(ctx, BatchInput{FarmID: f.ID, ProductType: "GOAT", UnitPrice: decimal.NewFromInt(50)}); err == nil {
		t.Fatal("expected error for unknown product type")
	}
	if _, err := svc.CreateBatch(ctx, BatchInput{FarmID: f.ID, ProductType: ProductEgg, UnitPrice: decimal.Zero}); err == nil {
		t.Fatal("expected error for zero unit price")
	}
	if _, err := svc.CreateBatch(ctx, BatchInput{FarmID: "missing", ProductType: ProductEgg, UnitPrice: decimal.NewFromInt(10)}); !errors.Is(err, ErrFarmNotFound) {
		t.Fatalf("expected farm not found, got %v", err)
	}
}

func TestCreateFarmRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.CreateFarm(context.Background(), FarmInput{Name: "   "}); err == nil {
		t.Fatal("expected error for blank farm name")
	}
}

func TestOpenBatchesFiltersByStatus(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.CreateFarm(ctx, FarmInput{Name: "Green Acres"})
	if err != nil {
		t.Fatalf("create farm: %v", err)
	}

	planned, err := svc.CreateBatch(ctx, BatchInput{FarmID: f.ID, ProductType: ProductEgg, UnitPrice: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	closed, err := svc.CreateBatch(ctx, BatchInput{FarmID: f.ID, ProductType: ProductEgg, UnitPrice: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if err := svc.Close(ctx, closed.ID); err != nil {
		t.Fatalf("close: %v", err)
	}

	open, err := svc.OpenBatches(ctx)
	if err != nil {
		t.Fatalf("open batches: %v", err)
	}
	if len(open) != 1 || open[0].ID != planned.ID {
		t.Fatalf("expected only the planned batch, got %+v", open)
	}
}
