package ledger

import (
	"context"

	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
)

// TransactionScope runs a posting as one atomic unit.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to every store a posting touches.
// All repositories share the same underlying database transaction.
//
//   - Transactions: header and detail rows, locked on update, delete, return and payment
//   - Installments: the schedule of installment transactions
//   - Items: stock is changed with a relative update, never read-modify-write
//   - CashBalance: the singleton row, locked before every change
//   - Movements: append-only journal written alongside each stock or cash change
//   - Parties: counterparty lookups, so a posting never references a missing party
type TransactionalRepositories interface {
	Transactions() ledger.TradeTransactionRepository
	Installments() ledger.InstallmentRepository
	Movements() ledger.MovementRepository
	Items() catalog.ItemRepository
	CashBalance() finance.CashBalanceRepository
	Parties() partner.PartyRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// Used in tests with in-memory fakes.
type NoOpTransactionScope struct {
	transactions ledger.TradeTransactionRepository
	installments ledger.InstallmentRepository
	movements    ledger.MovementRepository
	items        catalog.ItemRepository
	cash         finance.CashBalanceRepository
	parties      partner.PartyRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	transactions ledger.TradeTransactionRepository,
	installments ledger.InstallmentRepository,
	movements ledger.MovementRepository,
	items catalog.ItemRepository,
	cash finance.CashBalanceRepository,
	parties partner.PartyRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		transactions: transactions,
		installments: installments,
		movements:    movements,
		items:        items,
		cash:         cash,
		parties:      parties,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Transactions() ledger.TradeTransactionRepository { return s.transactions }
func (s *NoOpTransactionScope) Installments() ledger.InstallmentRepository      { return s.installments }
func (s *NoOpTransactionScope) Movements() ledger.MovementRepository            { return s.movements }
func (s *NoOpTransactionScope) Items() catalog.ItemRepository                   { return s.items }
func (s *NoOpTransactionScope) CashBalance() finance.CashBalanceRepository      { return s.cash }
func (s *NoOpTransactionScope) Parties() partner.PartyRepository                { return s.parties }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
