package payout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/investment"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBatch(roi string) *farm.Batch {
	b := &farm.Batch{ID: uuid.NewString(), Status: farm.StatusHarvested}
	if roi != "" {
		r := dec(roi)
		b.ExpectedROI = &r
	}
	return b
}

func testInvestment(amount string) investment.Investment {
	return investment.Investment{
		ID:     uuid.NewString(),
		UserID: uuid.NewString(),
		Amount: dec(amount),
		Status: investment.StatusActive,
	}
}

func TestSimulateEmptyBatch(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	total, err := engine.Simulate(testBatch("0.12"), nil)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected 0.00, got %s", total)
	}
}

func TestSimulateSingleInvestment(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	total, err := engine.Simulate(testBatch("0.15"), []investment.Investment{testInvestment("1000")})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !total.Equal(dec("150.00")) {
		t.Fatalf("expected 150.00, got %s", total)
	}
}

func TestSimulateIncludesZeroAmounts(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	total, err := engine.Simulate(testBatch("0.12"), []investment.Investment{
		testInvestment("0"),
		testInvestment("1000"),
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !total.Equal(dec("120.00")) {
		t.Fatalf("expected 120.00, got %s", total)
	}
}

func TestSimulateScenario(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	total, err := engine.Simulate(testBatch("0.12"), []investment.Investment{
		testInvestment("1000"),
		testInvestment("2500"),
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !total.Equal(dec("420.00")) {
		t.Fatalf("expected 420.00, got %s", total)
	}
}

func TestSimulateValidation(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	if _, err := engine.Simulate(nil, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for nil batch, got %v", err)
	}
	if _, err := engine.Simulate(testBatch(""), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing ROI, got %v", err)
	}
}

func TestExecuteScenario(t *testing.T) {
	repo := NewMemoryRepository()
	engine := NewEngine(repo, nil)
	ctx := context.Background()

	first := testInvestment("1000")
	second := testInvestment("2500")

	created, err := engine.Execute(ctx, testBatch("0.12"), []investment.Investment{first, second}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 payouts, got %d", len(created))
	}
	if !created[0].Amount.Equal(dec("120.00")) || !created[1].Amount.Equal(dec("300.00")) {
		t.Fatalf("unexpected amounts: %s, %s", created[0].Amount, created[1].Amount)
	}
	for _, p := range created {
		if p.Kind != KindReturn {
			t.Fatalf("expected kind %s, got %s", KindReturn, p.Kind)
		}
		if p.ID == "" || p.CreatedAt.IsZero() {
			t.Fatalf("expected server-assigned fields, got %+v", p)
		}
	}
	if created[0].InvestmentID != first.ID || created[1].InvestmentID != second.ID {
		t.Fatalf("payouts out of order: %+v", created)
	}

	persisted, err := repo.ListByInvestment(ctx, first.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("expected 1 persisted payout, got %d", len(persisted))
	}
}

func TestExecuteEmptyBatch(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)

	created, err := engine.Execute(context.Background(), testBatch("0.12"), nil, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected no payouts, got %d", len(created))
	}
}

func TestExecuteSkipsNonPositiveAmounts(t *testing.T) {
	repo := NewMemoryRepository()
	engine := NewEngine(repo, nil)
	ctx := context.Background()

	zero := testInvestment("0")
	funded := testInvestment("500")

	created, err := engine.Execute(ctx, testBatch("0.10"), []investment.Investment{zero, funded}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 payout, got %d", len(created))
	}
	if created[0].InvestmentID != funded.ID {
		t.Fatalf("expected payout for funded investment, got %s", created[0].InvestmentID)
	}

	skipped, err := repo.ListByInvestment(ctx, zero.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("expected no persisted payout for zero investment, got %d", len(skipped))
	}
}

func TestExecuteOverrideWins(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)
	override := dec("0.20")

	created, err := engine.Execute(context.Background(), testBatch("0.12"), []investment.Investment{testInvestment("1000")}, &override)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !created[0].Amount.Equal(dec("200.00")) {
		t.Fatalf("expected override amount 200.00, got %s", created[0].Amount)
	}
}

func TestExecuteOverrideWithoutBatchROI(t *testing.T) {
	engine := NewEngine(NewMemoryRepository(), nil)
	override := dec("0.05")

	created, err := engine.Execute(context.Background(), testBatch(""), []investment.Investment{testInvestment("1000")}, &override)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !created[0].Amount.Equal(dec("50.00")) {
		t.Fatalf("expected 50.00, got %s", created[0].Amount)
	}
}

func TestExecuteValidation(t *testing.T) {
	repo := NewMemoryRepository()
	engine := NewEngine(repo, nil)
	ctx := context.Background()

	if _, err := engine.Execute(ctx, nil, nil, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for nil batch, got %v", err)
	}

	inv := testInvestment("1000")
	if _, err := engine.Execute(ctx, testBatch(""), []investment.Investment{inv}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing ROI, got %v", err)
	}

	persisted, err := repo.ListByInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected nothing persisted after validation failure, got %d", len(persisted))
	}
}

func TestExecuteTwiceDuplicates(t *testing.T) {
	repo := NewMemoryRepository()
	engine := NewEngine(repo, nil)
	ctx := context.Background()

	batch := testBatch("0.12")
	inv := testInvestment("1000")

	for i := 0; i < 2; i++ {
		if _, err := engine.Execute(ctx, batch, []investment.Investment{inv}, nil); err != nil {
			t.Fatalf("execute %d: %v", i, err)
		}
	}

	persisted, err := repo.ListByInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("expected duplicate payout set on re-execution, got %d records", len(persisted))
	}
}

func TestSimulateIsReadOnly(t *testing.T) {
	repo := NewMemoryRepository()
	engine := NewEngine(repo, nil)
	ctx := context.Background()

	inv := testInvestment("1000")
	if _, err := engine.Simulate(testBatch("0.12"), []investment.Investment{inv}); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	persisted, err := repo.ListByInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("simulate must not persist records, found %d", len(persisted))
	}
}

type failingRepository struct{}

func (failingRepository) CreateAll(context.Context, []Payout) ([]Payout, error) {
	return nil, errors.New("commit failed")
}

func (failingRepository) ListByInvestment(context.Context, string) ([]Payout, error) {
	return nil, nil
}

func TestExecutePersistenceFailure(t *testing.T) {
	engine := NewEngine(failingRepository{}, nil)

	_, err := engine.Execute(context.Background(), testBatch("0.12"), []investment.Investment{testInvestment("1000")}, nil)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
