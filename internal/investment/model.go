package investment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment lifecycle statuses.
const (
	StatusActive = "ACTIVE"
	StatusExited = "EXITED"
	StatusPaid   = "PAID"
)

// Investment represents one user's stake in a batch. Amount is fixed at
// purchase time (units times the batch unit price) and never mutated.
type Investment struct {
	ID        string
	UserID    string
	BatchID   string
	Units     int64
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}
