package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded against a wallet.
const (
	TypeDeposit  = "DEPOSIT"
	TypeWithdraw = "WITHDRAW"
)

// Wallet holds a user's spendable balance.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Transaction records a single wallet mutation.
type Transaction struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Type      string
	Reference string
	CreatedAt time.Time
}
