package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// CashBalanceRepository gives access to the singleton cash-balance row
type CashBalanceRepository interface {
	// Get reads the balance without locking. Returns ErrNotFound when never set.
	Get(ctx context.Context) (*CashBalance, error)

	// FindForUpdate reads the balance with the row locked until commit.
	// Returns ErrNotFound when never set.
	FindForUpdate(ctx context.Context) (*CashBalance, error)

	// LockOrCreate locks the balance row, creating it with zero when missing
	LockOrCreate(ctx context.Context) (*CashBalance, error)

	Save(ctx context.Context, balance *CashBalance) error
}

// ExpenseFilter narrows an expense list
type ExpenseFilter struct {
	shared.Filter
	DateFrom *time.Time
	DateTo   *time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Expense, error)
	// FindAll lists expenses, searching category and note
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, int64, error)
	// SumAmount totals the expenses matching the filter
	SumAmount(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)
	Create(ctx context.Context, expense *Expense) error
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}
