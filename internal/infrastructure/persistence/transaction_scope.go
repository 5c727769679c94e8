package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/tekstil/ledger/internal/application/catalog"
	appfinance "github.com/tekstil/ledger/internal/application/finance"
	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
)

// GormLedgerScope implements the posting TransactionScope using GORM transactions
type GormLedgerScope struct {
	db *gorm.DB
}

// NewGormLedgerScope creates a new GormLedgerScope
func NewGormLedgerScope(db *gorm.DB) *GormLedgerScope {
	return &GormLedgerScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormLedgerScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormFinanceScope implements the finance TransactionScope using GORM transactions
type GormFinanceScope struct {
	db *gorm.DB
}

// NewGormFinanceScope creates a new GormFinanceScope
func NewGormFinanceScope(db *gorm.DB) *GormFinanceScope {
	return &GormFinanceScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormFinanceScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormCatalogScope implements the catalog TransactionScope using GORM transactions
type GormCatalogScope struct {
	db *gorm.DB
}

// NewGormCatalogScope creates a new GormCatalogScope
func NewGormCatalogScope(db *gorm.DB) *GormCatalogScope {
	return &GormCatalogScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormCatalogScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Transactions() ledger.TradeTransactionRepository {
	return NewGormTradeTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) Installments() ledger.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() ledger.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) Items() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) CashBalance() finance.CashBalanceRepository {
	return NewGormCashBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Parties() partner.PartyRepository {
	return NewGormPartyRepository(r.tx)
}

func (r *gormTransactionalRepositories) Expenses() finance.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

var (
	_ appledger.TransactionScope           = (*GormLedgerScope)(nil)
	_ appfinance.TransactionScope          = (*GormFinanceScope)(nil)
	_ appcatalog.TransactionScope          = (*GormCatalogScope)(nil)
	_ appledger.TransactionalRepositories  = (*gormTransactionalRepositories)(nil)
	_ appfinance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appcatalog.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
