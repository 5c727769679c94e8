package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errCashBalanceNotFound = shared.ErrNotFound.WithMessage("Cash balance not found")

// GormCashBalanceRepository implements CashBalanceRepository using GORM.
// The balance lives in a single row with a fixed key.
type GormCashBalanceRepository struct {
	db *gorm.DB
}

// NewGormCashBalanceRepository creates a new GormCashBalanceRepository
func NewGormCashBalanceRepository(db *gorm.DB) *GormCashBalanceRepository {
	return &GormCashBalanceRepository{db: db}
}

var _ finance.CashBalanceRepository = (*GormCashBalanceRepository)(nil)

// Get reads the balance without locking
func (r *GormCashBalanceRepository) Get(ctx context.Context) (*finance.CashBalance, error) {
	var model models.CashBalanceModel
	if err := r.db.WithContext(ctx).Where("id = ?", finance.CashBalanceID).First(&model).Error; err != nil {
		return nil, translateError(err, errCashBalanceNotFound)
	}
	return model.ToDomain(), nil
}

// FindForUpdate reads the balance with the row locked until commit
func (r *GormCashBalanceRepository) FindForUpdate(ctx context.Context) (*finance.CashBalance, error) {
	var model models.CashBalanceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", finance.CashBalanceID).
		First(&model).Error; err != nil {
		return nil, translateError(err, errCashBalanceNotFound)
	}
	return model.ToDomain(), nil
}

// LockOrCreate locks the balance row, inserting a zero balance first when it is missing
func (r *GormCashBalanceRepository) LockOrCreate(ctx context.Context) (*finance.CashBalance, error) {
	balance, err := r.FindForUpdate(ctx)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	seed := &models.CashBalanceModel{ID: finance.CashBalanceID, Amount: decimal.Zero, UpdatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, err
	}
	return r.FindForUpdate(ctx)
}

// Save writes the amount of the singleton row
func (r *GormCashBalanceRepository) Save(ctx context.Context, balance *finance.CashBalance) error {
	return r.db.WithContext(ctx).Model(&models.CashBalanceModel{}).
		Where("id = ?", finance.CashBalanceID).
		Updates(map[string]any{
			"amount":     balance.Amount,
			"updated_at": balance.UpdatedAt,
		}).Error
}
