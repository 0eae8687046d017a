package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service exposes wallet operations.
type Service struct {
	repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Provision creates a zero-balance wallet for a newly registered user.
func (s *Service) Provision(ctx context.Context, userID string) (Wallet, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Wallet{}, err
	}

	wallet := Wallet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, wallet); err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// Balance returns the wallet owned by the user.
func (s *Service) Balance(ctx context.Context, userID string) (Wallet, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Deposit credits the wallet balance. The amount must be positive.
func (s *Service) Deposit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	if !amount.IsPositive() {
		return Wallet{}, fmt.Errorf("amount must be positive")
	}
	return s.repo.Credit(ctx, userID, amount, reference)
}

// Debit removes funds from the wallet. The amount must be positive and the
// balance must cover it, otherwise ErrInsufficientFunds is returned and the
// balance stays unchanged.
func (s *Service) Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	if !amount.IsPositive() {
		return Wallet{}, fmt.Errorf("amount must be positive")
	}
	return s.repo.Debit(ctx, userID, amount, reference)
}

// Transactions lists wallet mutations for the user, newest first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	return s.repo.Transactions(ctx, userID)
}
