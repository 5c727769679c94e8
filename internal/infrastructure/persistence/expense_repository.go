package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, finance.ErrExpenseNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an expense and locks its row until commit
func (r *GormExpenseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err, finance.ErrExpenseNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll lists expenses, searching category and note
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, int64, error) {
	filter.Filter = filter.Filter.Normalize()

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ExpenseModel
	err := r.filtered(ctx, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, ExpenseSortFields, "expense_date")).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	list := make([]finance.Expense, len(rows))
	for i := range rows {
		list[i] = *rows[i].ToDomain()
	}
	return list, total, nil
}

// SumAmount totals the expenses matching the filter, ignoring pagination
func (r *GormExpenseRepository) SumAmount(ctx context.Context, filter finance.ExpenseFilter) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.filtered(ctx, filter).
		Select("SUM(amount)").
		Row().
		Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormExpenseRepository) filtered(ctx context.Context, filter finance.ExpenseFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if filter.DateFrom != nil {
		query = query.Where("expense_date >= ?", datatypes.Date(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("expense_date <= ?", datatypes.Date(*filter.DateTo))
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(category) LIKE LOWER(?) OR LOWER(note) LIKE LOWER(?)", p, p)
	}
	return query
}

// Create inserts a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	return translateError(r.db.WithContext(ctx).Create(models.ExpenseModelFromDomain(expense)).Error, nil)
}

// Save updates an existing expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	result := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"category":     expense.Category,
			"amount":       expense.Amount,
			"expense_date": datatypes.Date(expense.ExpenseDate),
			"note":         expense.Note,
			"updated_at":   expense.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return finance.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return finance.ErrExpenseNotFound
	}
	return nil
}
