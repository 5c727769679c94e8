package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// TransactionFilter narrows a transaction list
type TransactionFilter struct {
	shared.Filter
	CounterpartyID *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
}

// ItemHistoryEntry is one line of an item's trade history
type ItemHistoryEntry struct {
	TransactionID   uuid.UUID
	DetailID        uuid.UUID
	TransactionDate time.Time
	Quantity        Quantity
	Returned        Quantity
	UnitPrice       decimal.Decimal
	LineAmount      decimal.Decimal
}

// TradeTransactionRepository persists trade transactions with their details.
// Loaded transactions carry their installment schedule.
type TradeTransactionRepository interface {
	FindByID(ctx context.Context, direction Direction, id uuid.UUID) (*TradeTransaction, error)
	// FindByIDForUpdate loads the transaction with its header row locked until commit
	FindByIDForUpdate(ctx context.Context, direction Direction, id uuid.UUID) (*TradeTransaction, error)
	FindAll(ctx context.Context, direction Direction, filter TransactionFilter) ([]TradeTransaction, int64, error)
	// Create inserts the header and every detail line
	Create(ctx context.Context, trx *TradeTransaction) error
	SaveHeader(ctx context.Context, trx *TradeTransaction) error
	SaveDetail(ctx context.Context, detail *TransactionDetail) error
	CreateDetails(ctx context.Context, details []TransactionDetail) error
	DeleteDetails(ctx context.Context, transactionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForCounterparty(ctx context.Context, direction Direction, partyID uuid.UUID) (bool, error)
	ExistsForItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	ItemHistory(ctx context.Context, direction Direction, itemID uuid.UUID) ([]ItemHistoryEntry, error)
}

// InstallmentRepository persists installment schedules
type InstallmentRepository interface {
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Installment, error)
	Create(ctx context.Context, list []Installment) error
	Save(ctx context.Context, inst *Installment) error
	Delete(ctx context.Context, ids []uuid.UUID) error
	DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error
}

// MovementRepository appends to and reads the ledger journal
type MovementRepository interface {
	Append(ctx context.Context, movements ...Movement) error
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Movement, error)
}
