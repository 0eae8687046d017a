package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/wallet"
)

// ErrBatchUnavailable indicates the batch does not accept investments.
var ErrBatchUnavailable = errors.New("batch not available for investment")

// Service coordinates unit purchases against open batches, funded from the
// buyer's wallet.
type Service struct {
	repo    Repository
	farms   farm.Repository
	wallets *wallet.Service
}

// NewService constructs an investment service.
func NewService(repo Repository, farms farm.Repository, wallets *wallet.Service) *Service {
	return &Service{repo: repo, farms: farms, wallets: wallets}
}

// PurchaseInput captures the data needed to buy units of a batch.
type PurchaseInput struct {
	UserID  string
	BatchID string
	Units   int64
}

// Purchase buys units of a batch. The wallet is debited for
// units * unit_price before the investment is recorded; an insufficient
// balance aborts the purchase with wallet.ErrInsufficientFunds and no state
// change.
func (s *Service) Purchase(ctx context.Context, input PurchaseInput) (Investment, error) {
	if input.Units <= 0 {
		return Investment{}, fmt.Errorf("units must be positive")
	}

	batch, err := s.farms.GetBatch(ctx, input.BatchID)
	if err != nil {
		return Investment{}, err
	}
	if !batch.Open() {
		return Investment{}, ErrBatchUnavailable
	}

	amount := batch.UnitPrice.Mul(decimal.NewFromInt(input.Units))

	inv := Investment{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		BatchID:   batch.ID,
		Units:     input.Units,
		Amount:    amount,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.wallets.Debit(ctx, input.UserID, amount, "invest:"+inv.ID); err != nil {
		return Investment{}, err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		// Refund the debit so the wallet is not left short on a failed insert.
		if _, refundErr := s.wallets.Deposit(ctx, input.UserID, amount, "refund:"+inv.ID); refundErr != nil {
			return Investment{}, fmt.Errorf("create investment: %w (refund failed: %v)", err, refundErr)
		}
		return Investment{}, err
	}

	if err := s.farms.AddUnitsPlaced(ctx, batch.ID, input.Units); err != nil {
		return Investment{}, err
	}

	return inv, nil
}

// ListByUser returns the user's investments, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Investment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fetches an investment by identifier.
func (s *Service) Get(ctx context.Context, id string) (Investment, error) {
	return s.repo.Get(ctx, id)
}

// ListByBatch returns all investments in a batch in insertion order.
func (s *Service) ListByBatch(ctx context.Context, batchID string) ([]Investment, error) {
	return s.repo.ListByBatch(ctx, batchID)
}
