package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/partner"
)

// Direction tells which side of the business a trade transaction is on.
// Outbound is a sale to a customer, inbound a purchase from a supplier.
// Every stock and cash sign in the engine is derived from it.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

var (
	minusOne = decimal.NewFromInt(-1)
	plusOne  = decimal.NewFromInt(1)
)

// ParseDirection parses a path or query value
func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(raw)))
	if !d.IsValid() {
		return "", ErrInvalidDirection
	}
	return d, nil
}

// IsValid reports whether d is a known direction
func (d Direction) IsValid() bool {
	return d == DirectionOutbound || d == DirectionInbound
}

// String implements fmt.Stringer
func (d Direction) String() string {
	return string(d)
}

// StockSign is the sign applied to a posted quantity when it hits stock.
// Goods leave on a sale and arrive on a purchase.
func (d Direction) StockSign() decimal.Decimal {
	if d == DirectionOutbound {
		return minusOne
	}
	return plusOne
}

// CashSign is the sign applied to money settled for this direction.
// Sales bring cash in, purchases pay it out.
func (d Direction) CashSign() decimal.Decimal {
	if d == DirectionOutbound {
		return plusOne
	}
	return minusOne
}

// PostingDelta converts a net quantity into the stock change it causes
func (d Direction) PostingDelta(q Quantity) Quantity {
	return q.Scale(d.StockSign())
}

// CashDelta converts a settled amount into the cash-balance change it causes
func (d Direction) CashDelta(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(d.CashSign())
}

// CounterpartyKind is the party kind a transaction of this direction references
func (d Direction) CounterpartyKind() partner.Kind {
	if d == DirectionOutbound {
		return partner.KindCustomer
	}
	return partner.KindSupplier
}
