package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memoryRepository struct {
	mu           sync.Mutex
	wallets      map[string]Wallet // keyed by user ID
	transactions map[string][]Transaction
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		wallets:      make(map[string]Wallet),
		transactions: make(map[string][]Transaction),
	}
}

func (r *memoryRepository) Create(_ context.Context, wallet Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.wallets[wallet.UserID]; exists {
		return errors.New("wallet exists")
	}
	r.wallets[wallet.UserID] = wallet
	return nil
}

func (r *memoryRepository) GetByUser(_ context.Context, userID string) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w, nil
}

func (r *memoryRepository) Credit(_ context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	return r.apply(userID, amount, TypeDeposit, reference)
}

func (r *memoryRepository) Debit(_ context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	return r.apply(userID, amount.Neg(), TypeWithdraw, reference)
}

func (r *memoryRepository) apply(userID string, delta decimal.Decimal, ttype, reference string) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[userID]
	if !ok {
		return Wallet{}, ErrNotFound
	}

	newBalance := w.Balance.Add(delta)
	if newBalance.IsNegative() {
		return Wallet{}, ErrInsufficientFunds
	}

	w.Balance = newBalance
	r.wallets[userID] = w

	r.transactions[userID] = append(r.transactions[userID], Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    delta.Abs(),
		Type:      ttype,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	})

	return w, nil
}

func (r *memoryRepository) Transactions(_ context.Context, userID string) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txs := r.transactions[userID]
	out := make([]Transaction, len(txs))
	for i := range txs {
		out[len(txs)-1-i] = txs[i]
	}
	return out, nil
}
