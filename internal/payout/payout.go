package payout

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// KindReturn classifies a payout computed from a batch return multiplier.
// It is the only kind the engine produces.
const KindReturn = "RETURN"

var (
	// ErrValidation indicates the batch or its return multiplier is missing.
	ErrValidation = errors.New("payout validation failed")

	// ErrPersistence indicates the payout commit failed and was rolled back.
	ErrPersistence = errors.New("payout persistence failed")
)

// Payout represents one disbursement record tied to an investment. Records
// are created only by Engine.Execute and never mutated or deleted.
type Payout struct {
	ID           string
	InvestmentID string
	Amount       decimal.Decimal
	Kind         string
	CreatedAt    time.Time
}
