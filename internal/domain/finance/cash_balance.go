package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// CashBalanceID is the fixed key of the singleton cash-balance row
const CashBalanceID = 1

// ErrCashBalanceMissing is returned when no opening balance was ever set
var ErrCashBalanceMissing = shared.ErrInsufficientBalance.WithMessage("Cash balance has not been set")

// CashBalance is the running sum of every cash effect posted since it was created
type CashBalance struct {
	ID        int
	Amount    decimal.Decimal
	UpdatedAt time.Time
}

// NewCashBalance creates the singleton with a zero amount
func NewCashBalance() *CashBalance {
	return &CashBalance{ID: CashBalanceID, Amount: decimal.Zero, UpdatedAt: time.Now()}
}

// Apply adds a signed delta
func (b *CashBalance) Apply(delta decimal.Decimal) {
	b.Amount = b.Amount.Add(delta)
	b.UpdatedAt = time.Now()
}

// Set replaces the amount and returns the change
func (b *CashBalance) Set(amount decimal.Decimal) decimal.Decimal {
	delta := amount.Sub(b.Amount)
	b.Apply(delta)
	return delta
}

// Covers reports whether the balance can pay amount
func (b *CashBalance) Covers(amount decimal.Decimal) bool {
	return b.Amount.GreaterThanOrEqual(amount)
}
