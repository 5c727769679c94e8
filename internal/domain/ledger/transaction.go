package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// TransactionDetail is one line of a trade transaction
type TransactionDetail struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	LineNo        int
	ItemID        *uuid.UUID // optional, lines may reference an unknown or missing item
	Quantity      Quantity
	UnitPrice     decimal.Decimal
	Returned      Quantity // cumulative, never above Quantity
}

// NetQuantity is what is still posted against stock after returns
func (d TransactionDetail) NetQuantity() Quantity {
	return d.Quantity.Sub(d.Returned)
}

// LineAmount is yard quantity times unit price
func (d TransactionDetail) LineAmount() decimal.Decimal {
	return d.Quantity.Yard.Mul(d.UnitPrice)
}

// ReturnedAmount is the money value of what was returned on this line
func (d TransactionDetail) ReturnedAmount() decimal.Decimal {
	return d.Returned.Yard.Mul(d.UnitPrice)
}

// HasItem reports whether the line references an item
func (d TransactionDetail) HasItem() bool {
	return d.ItemID != nil && *d.ItemID != uuid.Nil
}

// DetailLine is a detail line of a create request
type DetailLine struct {
	ItemID    *uuid.UUID
	Quantity  Quantity
	UnitPrice decimal.Decimal
}

// Header holds the editable header fields of a transaction
type Header struct {
	CounterpartyID  *uuid.UUID
	TransactionDate time.Time
	PaymentStatus   PaymentStatus
	Discount        Adjustment
	Tax             Adjustment
	Note            string
}

// Validate checks the header fields
func (h Header) Validate() error {
	if h.TransactionDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// TradeTransaction is a sale (outbound) or a purchase (inbound) with its lines and schedule.
// Total is the recorded total: computed total minus the value of returned goods.
type TradeTransaction struct {
	shared.BaseEntity
	Direction Direction
	Header
	Total        decimal.Decimal
	CreatedBy    *uuid.UUID
	Details      []TransactionDetail
	Installments []Installment
}

// NewTradeTransaction builds a transaction ready to be posted
func NewTradeTransaction(direction Direction, header Header, lines []DetailLine, createdBy *uuid.UUID) (*TradeTransaction, Totals, error) {
	if !direction.IsValid() {
		return nil, Totals{}, ErrInvalidDirection
	}
	if err := header.Validate(); err != nil {
		return nil, Totals{}, err
	}
	if len(lines) == 0 {
		return nil, Totals{}, ErrEmptyDetails
	}

	trx := &TradeTransaction{
		BaseEntity: shared.NewBaseEntity(),
		Direction:  direction,
		Header:     header,
		CreatedBy:  createdBy,
	}
	details := make([]TransactionDetail, 0, len(lines))
	for i, line := range lines {
		if line.Quantity.IsNegative() || line.UnitPrice.IsNegative() {
			return nil, Totals{}, ErrInvalidQuantity
		}
		details = append(details, TransactionDetail{
			ID:            uuid.New(),
			TransactionID: trx.ID,
			LineNo:        i + 1,
			ItemID:        line.ItemID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		})
	}
	trx.Details = details

	totals := ComputeTotals(Subtotal(details), header.Discount, header.Tax)
	trx.Total = totals.Total
	return trx, totals, nil
}

// Revise replaces header and details, recomputing the recorded total.
// Carried returns are netted out of the total so the header agrees with the return engine.
func (t *TradeTransaction) Revise(header Header, details []TransactionDetail) (Totals, error) {
	if err := header.Validate(); err != nil {
		return Totals{}, err
	}
	t.Header = header
	t.Details = details
	totals := ComputeTotals(Subtotal(details), header.Discount, header.Tax)
	t.Total = totals.Total.Sub(t.ReturnedAmount())
	t.Touch()
	return totals, nil
}

// ReturnedAmount sums the value of returned goods over all lines
func (t *TradeTransaction) ReturnedAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range t.Details {
		sum = sum.Add(d.ReturnedAmount())
	}
	return sum
}

// PaidAmount sums what was paid on the installment schedule
func (t *TradeTransaction) PaidAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range t.Installments {
		sum = sum.Add(inst.AmountPaid)
	}
	return sum
}

// PaidCount is the number of schedule entries with a payment
func (t *TradeTransaction) PaidCount() int {
	n := 0
	for _, inst := range t.Installments {
		if inst.IsPaid() {
			n++
		}
	}
	return n
}

// HasPaidInstallments reports whether any schedule entry was paid
func (t *TradeTransaction) HasPaidInstallments() bool {
	return t.PaidCount() > 0
}

// CashEffect is what this transaction has contributed to the cash balance.
// Immediate transactions settle their recorded total. Installment transactions
// settle what was paid, less the refunds issued for returns.
func (t *TradeTransaction) CashEffect() decimal.Decimal {
	settled := t.Total
	if t.PaymentStatus.IsInstallment() {
		settled = t.PaidAmount().Sub(t.ReturnedAmount())
	}
	return t.Direction.CashDelta(settled)
}

// StockEffect is the stock change a detail line causes on one item
type StockEffect struct {
	DetailID uuid.UUID
	ItemID   uuid.UUID
	Delta    Quantity
}

// StockEffects lists the net stock change of every line that references an item
func (t *TradeTransaction) StockEffects() []StockEffect {
	effects := make([]StockEffect, 0, len(t.Details))
	for _, d := range t.Details {
		if !d.HasItem() {
			continue
		}
		effects = append(effects, StockEffect{
			DetailID: d.ID,
			ItemID:   *d.ItemID,
			Delta:    t.Direction.PostingDelta(d.NetQuantity()),
		})
	}
	return effects
}

// FindDetail returns the detail with the given id, or nil
func (t *TradeTransaction) FindDetail(id uuid.UUID) *TransactionDetail {
	for i := range t.Details {
		if t.Details[i].ID == id {
			return &t.Details[i]
		}
	}
	return nil
}

// ReturnOutcome is the effect of recording a return on one line
type ReturnOutcome struct {
	Detail     *TransactionDetail
	Delta      Quantity        // change of the returned quantity
	StockDelta Quantity        // stock change, opposite to the posting
	Refund     decimal.Decimal // unit price times yard delta
}

// ApplyReturn sets the cumulative returned quantity of a line.
// The new value replaces the old one; a lower value takes goods back out.
func (t *TradeTransaction) ApplyReturn(detailID uuid.UUID, returned Quantity) (ReturnOutcome, error) {
	d := t.FindDetail(detailID)
	if d == nil {
		return ReturnOutcome{}, ErrDetailNotInTransaction
	}
	if returned.IsNegative() {
		return ReturnOutcome{}, ErrInvalidQuantity
	}
	if returned.Exceeds(d.Quantity) {
		return ReturnOutcome{}, ErrReturnExceedsQuantity
	}

	delta := returned.Sub(d.Returned)
	d.Returned = returned
	return ReturnOutcome{
		Detail:     d,
		Delta:      delta,
		StockDelta: t.Direction.PostingDelta(delta).Neg(),
		Refund:     delta.Yard.Mul(d.UnitPrice),
	}, nil
}

// DeductRefund lowers the recorded total by a return refund
func (t *TradeTransaction) DeductRefund(refund decimal.Decimal) {
	t.Total = t.Total.Sub(refund)
	t.Touch()
}
