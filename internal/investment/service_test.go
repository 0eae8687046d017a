package investment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/wallet"
)

func setup(t *testing.T) (*Service, *wallet.Service, farm.Repository) {
	t.Helper()
	walletSvc := wallet.NewService(wallet.NewMemoryRepository())
	farmRepo := farm.NewMemoryRepository()
	svc := NewService(NewMemoryRepository(), farmRepo, walletSvc)
	return svc, walletSvc, farmRepo
}

func seedBatch(t *testing.T, repo farm.Repository, status string, unitPrice int64) farm.Batch {
	t.Helper()
	ctx := context.Background()
	f := farm.Farm{ID: uuid.NewString(), Name: "Test Farm"}
	if err := repo.CreateFarm(ctx, f); err != nil {
		t.Fatalf("create farm: %v", err)
	}
	b := farm.Batch{
		ID:          uuid.NewString(),
		FarmID:      f.ID,
		ProductType: farm.ProductChicken,
		Status:      status,
		UnitPrice:   decimal.NewFromInt(unitPrice),
	}
	if err := repo.CreateBatch(ctx, b); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return b
}

func TestPurchaseDebitsWalletAndPlacesUnits(t *testing.T) {
	svc, walletSvc, farmRepo := setup(t)
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := walletSvc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := walletSvc.Deposit(ctx, userID, decimal.NewFromInt(500), "deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	batch := seedBatch(t, farmRepo, farm.StatusActive, 50)

	inv, err := svc.Purchase(ctx, PurchaseInput{UserID: userID, BatchID: batch.ID, Units: 3})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !inv.Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected amount 150, got %s", inv.Amount)
	}
	if inv.Status != StatusActive {
		t.Fatalf("expected ACTIVE investment, got %s", inv.Status)
	}

	w, err := walletSvc.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected balance 350, got %s", w.Balance)
	}

	updated, err := farmRepo.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	if updated.UnitsPlaced != 3 {
		t.Fatalf("expected 3 units placed, got %d", updated.UnitsPlaced)
	}
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	svc, walletSvc, farmRepo := setup(t)
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := walletSvc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := walletSvc.Deposit(ctx, userID, decimal.NewFromInt(100), "deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	batch := seedBatch(t, farmRepo, farm.StatusActive, 50)

	if _, err := svc.Purchase(ctx, PurchaseInput{UserID: userID, BatchID: batch.ID, Units: 3}); !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	w, err := walletSvc.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance changed after failed purchase: %s", w.Balance)
	}
}

func TestPurchaseClosedBatch(t *testing.T) {
	svc, walletSvc, farmRepo := setup(t)
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := walletSvc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := walletSvc.Deposit(ctx, userID, decimal.NewFromInt(500), "deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	batch := seedBatch(t, farmRepo, farm.StatusClosed, 50)

	if _, err := svc.Purchase(ctx, PurchaseInput{UserID: userID, BatchID: batch.ID, Units: 1}); !errors.Is(err, ErrBatchUnavailable) {
		t.Fatalf("expected batch unavailable, got %v", err)
	}
}

func TestPurchaseRejectsNonPositiveUnits(t *testing.T) {
	svc, _, farmRepo := setup(t)
	batch := seedBatch(t, farmRepo, farm.StatusActive, 50)

	if _, err := svc.Purchase(context.Background(), PurchaseInput{UserID: uuid.NewString(), BatchID: batch.ID, Units: 0}); err == nil {
		t.Fatal("expected error for zero units")
	}
}
