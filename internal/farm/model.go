package farm

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product types a batch can produce.
const (
	ProductEgg     = "EGG"
	ProductChicken = "CHICKEN"
)

// Batch lifecycle statuses.
const (
	StatusPlanned   = "PLANNED"
	StatusActive    = "ACTIVE"
	StatusHarvested = "HARVESTED"
	StatusClosed    = "CLOSED"
)

// Farm represents a production site that runs batches.
type Farm struct {
	ID        string
	Name      string
	Location  string
	Notes     string
	CreatedAt time.Time
}

// Batch represents one production run investors can buy units of.
// ExpectedROI is nil until an operator sets the return multiplier.
type Batch struct {
	ID            string
	FarmID        string
	ProductType   string
	Status        string
	UnitPrice     decimal.Decimal
	TargetUnits   int64
	UnitsPlaced   int64
	FeedPrice     decimal.Decimal
	MortalityRate decimal.Decimal
	ExpectedROI   *decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
}

// Open reports whether the batch still accepts investments.
func (b Batch) Open() bool {
	return b.Status == StatusPlanned || b.Status == StatusActive
}
