package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind separates stock from cash entries in the journal
type MovementKind string

const (
	MovementStock MovementKind = "stock"
	MovementCash  MovementKind = "cash"
)

// Operation names what caused a movement
type Operation string

const (
	OperationPost       Operation = "post"
	OperationRepost     Operation = "repost"
	OperationReverse    Operation = "reverse"
	OperationReturn     Operation = "return"
	OperationPayment    Operation = "payment"
	OperationExpense    Operation = "expense"
	OperationCorrection Operation = "correction"
)

// Movement is one journal entry. Stock entries carry a quantity delta, cash
// entries an amount delta. Every mutation of stock or cash writes one.
type Movement struct {
	ID            uuid.UUID
	Kind          MovementKind
	Operation     Operation
	Direction     Direction
	TransactionID *uuid.UUID
	DetailID      *uuid.UUID
	ItemID        *uuid.UUID
	ExpenseID     *uuid.UUID
	Quantity      Quantity
	Amount        decimal.Decimal
	Meta          map[string]any
	CreatedAt     time.Time
}

// NewStockMovement records a stock delta on an item
func NewStockMovement(op Operation, direction Direction, transactionID, detailID *uuid.UUID, itemID uuid.UUID, delta Quantity) Movement {
	return Movement{
		ID:            uuid.New(),
		Kind:          MovementStock,
		Operation:     op,
		Direction:     direction,
		TransactionID: transactionID,
		DetailID:      detailID,
		ItemID:        &itemID,
		Quantity:      delta,
		Amount:        decimal.Zero,
		CreatedAt:     time.Now(),
	}
}

// NewCashMovement records a cash-balance delta
func NewCashMovement(op Operation, direction Direction, transactionID *uuid.UUID, amount decimal.Decimal) Movement {
	return Movement{
		ID:            uuid.New(),
		Kind:          MovementCash,
		Operation:     op,
		Direction:     direction,
		TransactionID: transactionID,
		Quantity:      Quantity{Yard: decimal.Zero, Roll: decimal.Zero},
		Amount:        amount,
		CreatedAt:     time.Now(),
	}
}

// WithMeta attaches a metadata entry
func (m Movement) WithMeta(key string, value any) Movement {
	meta := make(map[string]any, len(m.Meta)+1)
	for k, v := range m.Meta {
		meta[k] = v
	}
	meta[key] = value
	m.Meta = meta
	return m
}
