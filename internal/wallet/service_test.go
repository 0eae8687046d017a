package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestProvisionAndDeposit(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	userID := uuid.NewString()

	w, err := svc.Provision(ctx, userID)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !w.Balance.Equal(decimal.Zero) {
		t.Fatalf("expected zero opening balance, got %s", w.Balance)
	}

	w, err = svc.Deposit(ctx, userID, decimal.NewFromInt(500), "deposit")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected balance 500, got %s", w.Balance)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := svc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := svc.Deposit(ctx, userID, decimal.Zero, "deposit"); err == nil {
		t.Fatal("expected error for zero deposit")
	}
	if _, err := svc.Deposit(ctx, userID, decimal.NewFromInt(-10), "deposit"); err == nil {
		t.Fatal("expected error for negative deposit")
	}
}

func TestDebitInsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := svc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := svc.Deposit(ctx, userID, decimal.NewFromInt(500), "deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// First purchase succeeds.
	w, err := svc.Debit(ctx, userID, decimal.NewFromInt(150), "invest:a")
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected balance 350, got %s", w.Balance)
	}

	// Second purchase exceeds the remaining balance.
	if _, err := svc.Debit(ctx, userID, decimal.NewFromInt(400), "invest:b"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	after, err := svc.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !after.Balance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("balance changed after failed debit: %s", after.Balance)
	}
}

func TestTransactionsRecorded(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	userID := uuid.NewString()

	if _, err := svc.Provision(ctx, userID); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := svc.Deposit(ctx, userID, decimal.NewFromInt(200), "deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := svc.Debit(ctx, userID, decimal.NewFromInt(50), "invest:x"); err != nil {
		t.Fatalf("debit: %v", err)
	}

	txs, err := svc.Transactions(ctx, userID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	// Newest first.
	if txs[0].Type != TypeWithdraw || txs[1].Type != TypeDeposit {
		t.Fatalf("unexpected transaction order: %+v", txs)
	}
	if !txs[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected debit amount recorded as 50, got %s", txs[0].Amount)
	}
}
