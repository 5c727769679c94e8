package finance

import (
	"context"

	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
)

// TransactionScope runs an expense or balance change as one atomic unit
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the stores a cash change touches.
// The cash-balance row is locked before it is changed.
type TransactionalRepositories interface {
	Expenses() finance.ExpenseRepository
	CashBalance() finance.CashBalanceRepository
	Movements() ledger.MovementRepository
}
