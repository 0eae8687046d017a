package payout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/investment"
	"github.com/farmvest/farmvest/internal/notification"
)

// Engine computes and settles batch payouts. Simulate is read-only; Execute
// persists one payout per eligible investment.
//
// Execute carries no idempotency guard: running it twice against the same
// batch writes two full sets of payout records. Callers that need
// run-once semantics must gate it themselves.
type Engine struct {
	repo     Repository
	notifier notification.Notifier
}

// NewEngine constructs a payout engine.
func NewEngine(repo Repository, notifier notification.Notifier) *Engine {
	return &Engine{repo: repo, notifier: notifier}
}

// Simulate computes the total projected payout for the batch without
// persisting anything. Every investment contributes amount * roi to the
// total; a zero or negative principal contributes zero rather than being
// skipped. The result is rounded to two decimal places.
func (e *Engine) Simulate(batch *farm.Batch, investments []investment.Investment) (decimal.Decimal, error) {
	if batch == nil {
		return decimal.Zero, fmt.Errorf("%w: batch is required", ErrValidation)
	}
	if batch.ExpectedROI == nil {
		return decimal.Zero, fmt.Errorf("%w: expected ROI must be set", ErrValidation)
	}

	roi := *batch.ExpectedROI
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.Amount.Mul(roi))
	}

	return total.Round(2), nil
}

// Execute creates one payout record per investment with a strictly positive
// principal, committed as a single transaction. roiOverride takes precedence
// over the batch's own multiplier when supplied. The returned records follow
// the iteration order of the investments, skipping ineligible ones, and carry
// their server-assigned identifiers and timestamps.
func (e *Engine) Execute(ctx context.Context, batch *farm.Batch, investments []investment.Investment, roiOverride *decimal.Decimal) ([]Payout, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: batch is required", ErrValidation)
	}

	roi := roiOverride
	if roi == nil {
		roi = batch.ExpectedROI
	}
	if roi == nil {
		return nil, fmt.Errorf("%w: ROI not specified on batch and no override given", ErrValidation)
	}

	staged := make([]Payout, 0, len(investments))
	recipients := make([]string, 0, len(investments))
	for _, inv := range investments {
		if !inv.Amount.IsPositive() {
			continue
		}
		staged = append(staged, Payout{
			InvestmentID: inv.ID,
			Amount:       inv.Amount.Mul(*roi).Round(2),
			Kind:         KindReturn,
		})
		recipients = append(recipients, inv.UserID)
	}

	created, err := e.repo.CreateAll(ctx, staged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if e.notifier != nil {
		for i, p := range created {
			_ = e.notifier.Send(ctx, notification.Message{
				Kind:        notification.KindPayout,
				Destination: recipients[i],
				Body:        fmt.Sprintf("Payout of %s credited for investment %s", p.Amount.StringFixed(2), p.InvestmentID),
			})
		}
	}

	return created, nil
}

// ListByInvestment returns the payouts recorded against an investment.
func (e *Engine) ListByInvestment(ctx context.Context, investmentID string) ([]Payout, error) {
	return e.repo.ListByInvestment(ctx, investmentID)
}
