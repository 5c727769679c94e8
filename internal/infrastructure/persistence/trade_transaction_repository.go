package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTradeTransactionRepository implements TradeTransactionRepository using GORM.
// Sales and purchases share tables and are told apart by direction.
type GormTradeTransactionRepository struct {
	db *gorm.DB
}

// NewGormTradeTransactionRepository creates a new GormTradeTransactionRepository
func NewGormTradeTransactionRepository(db *gorm.DB) *GormTradeTransactionRepository {
	return &GormTradeTransactionRepository{db: db}
}

var _ ledger.TradeTransactionRepository = (*GormTradeTransactionRepository)(nil)

// FindByID loads a transaction with its details and installment schedule
func (r *GormTradeTransactionRepository) FindByID(ctx context.Context, direction ledger.Direction, id uuid.UUID) (*ledger.TradeTransaction, error) {
	return r.find(ctx, r.db.WithContext(ctx), direction, id)
}

// FindByIDForUpdate loads a transaction with its header row locked until commit
func (r *GormTradeTransactionRepository) FindByIDForUpdate(ctx context.Context, direction ledger.Direction, id uuid.UUID) (*ledger.TradeTransaction, error) {
	return r.find(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), direction, id)
}

func (r *GormTradeTransactionRepository) find(ctx context.Context, query *gorm.DB, direction ledger.Direction, id uuid.UUID) (*ledger.TradeTransaction, error) {
	var model models.TradeTransactionModel
	if err := query.Where("id = ? AND direction = ?", id, direction).First(&model).Error; err != nil {
		return nil, translateError(err, ledger.ErrTransactionNotFound)
	}

	trx := model.ToDomain()
	list := []*ledger.TradeTransaction{trx}
	if err := r.attachChildren(ctx, list); err != nil {
		return nil, err
	}
	return trx, nil
}

// FindAll lists transactions of one direction, newest transaction date first by default
func (r *GormTradeTransactionRepository) FindAll(ctx context.Context, direction ledger.Direction, filter ledger.TransactionFilter) ([]ledger.TradeTransaction, int64, error) {
	filter.Filter = filter.Filter.Normalize()

	var total int64
	if err := r.filtered(ctx, direction, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TradeTransactionModel
	err := r.filtered(ctx, direction, filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, TradeTransactionSortFields, "transaction_date")).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	list := make([]*ledger.TradeTransaction, len(rows))
	for i := range rows {
		list[i] = rows[i].ToDomain()
	}
	if err := r.attachChildren(ctx, list); err != nil {
		return nil, 0, err
	}

	result := make([]ledger.TradeTransaction, len(list))
	for i, trx := range list {
		result[i] = *trx
	}
	return result, total, nil
}

func (r *GormTradeTransactionRepository) filtered(ctx context.Context, direction ledger.Direction, filter ledger.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.TradeTransactionModel{}).Where("direction = ?", direction)
	if filter.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filter.CounterpartyID)
	}
	if filter.DateFrom != nil {
		query = query.Where("transaction_date >= ?", datatypes.Date(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("transaction_date <= ?", datatypes.Date(*filter.DateTo))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(note) LIKE LOWER(?)", likePattern(filter.Search))
	}
	return query
}

// attachChildren loads details and installments for a page of headers in two queries
func (r *GormTradeTransactionRepository) attachChildren(ctx context.Context, list []*ledger.TradeTransaction) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(list))
	byID := make(map[uuid.UUID]*ledger.TradeTransaction, len(list))
	for i, trx := range list {
		ids[i] = trx.ID
		byID[trx.ID] = trx
	}

	var details []models.TransactionDetailModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", ids).
		Order("line_no ASC").
		Find(&details).Error; err != nil {
		return err
	}
	for i := range details {
		if trx, ok := byID[details[i].TransactionID]; ok {
			trx.Details = append(trx.Details, details[i].ToDomain())
		}
	}

	var installments []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", ids).
		Order("due_date ASC, created_at ASC").
		Find(&installments).Error; err != nil {
		return err
	}
	for i := range installments {
		if trx, ok := byID[installments[i].TransactionID]; ok {
			trx.Installments = append(trx.Installments, installments[i].ToDomain())
		}
	}
	for _, trx := range list {
		ledger.SortInstallments(trx.Installments)
	}
	return nil
}

// Create inserts the header and every detail line
func (r *GormTradeTransactionRepository) Create(ctx context.Context, trx *ledger.TradeTransaction) error {
	if err := r.db.WithContext(ctx).Create(models.TradeTransactionModelFromDomain(trx)).Error; err != nil {
		return translateError(err, nil)
	}
	return r.CreateDetails(ctx, trx.Details)
}

// SaveHeader writes every header column of an existing transaction
func (r *GormTradeTransactionRepository) SaveHeader(ctx context.Context, trx *ledger.TradeTransaction) error {
	m := models.TradeTransactionModelFromDomain(trx)
	result := r.db.WithContext(ctx).Model(&models.TradeTransactionModel{}).
		Where("id = ? AND direction = ?", trx.ID, trx.Direction).
		Updates(map[string]any{
			"counterparty_id":  m.CounterpartyID,
			"transaction_date": m.TransactionDate,
			"payment_status":   m.PaymentStatus,
			"discount_type":    m.DiscountType,
			"discount_value":   m.DiscountValue,
			"tax_type":         m.TaxType,
			"tax_value":        m.TaxValue,
			"total":            m.Total,
			"note":             m.Note,
			"updated_at":       m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

// SaveDetail writes the mutable columns of a detail line
func (r *GormTradeTransactionRepository) SaveDetail(ctx context.Context, detail *ledger.TransactionDetail) error {
	return r.db.WithContext(ctx).Model(&models.TransactionDetailModel{}).
		Where("id = ? AND transaction_id = ?", detail.ID, detail.TransactionID).
		Updates(map[string]any{
			"line_no":       detail.LineNo,
			"item_id":       detail.ItemID,
			"quantity_yard": detail.Quantity.Yard,
			"quantity_roll": detail.Quantity.Roll,
			"unit_price":    detail.UnitPrice,
			"returned_yard": detail.Returned.Yard,
			"returned_roll": detail.Returned.Roll,
			"updated_at":    time.Now().UTC(),
		}).Error
}

// CreateDetails inserts detail lines
func (r *GormTradeTransactionRepository) CreateDetails(ctx context.Context, details []ledger.TransactionDetail) error {
	if len(details) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*models.TransactionDetailModel, len(details))
	for i := range details {
		rows[i] = models.TransactionDetailModelFromDomain(&details[i])
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error, nil)
}

// DeleteDetails removes every detail line of a transaction
func (r *GormTradeTransactionRepository) DeleteDetails(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&models.TransactionDetailModel{}).Error
}

// Delete removes the header row. Details and installments are removed by their own calls.
func (r *GormTradeTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TradeTransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

// ExistsForCounterparty reports whether any transaction of the direction references the party
func (r *GormTradeTransactionRepository) ExistsForCounterparty(ctx context.Context, direction ledger.Direction, partyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TradeTransactionModel{}).
		Where("direction = ? AND counterparty_id = ?", direction, partyID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// ExistsForItem reports whether any detail line references the item
func (r *GormTradeTransactionRepository) ExistsForItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TransactionDetailModel{}).
		Where("item_id = ?", itemID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

type itemHistoryRow struct {
	TransactionID   uuid.UUID
	DetailID        uuid.UUID
	TransactionDate datatypes.Date
	QuantityYard    decimal.Decimal
	QuantityRoll    decimal.Decimal
	ReturnedYard    decimal.Decimal
	ReturnedRoll    decimal.Decimal
	UnitPrice       decimal.Decimal
}

// ItemHistory lists the detail lines of one direction that reference the item, newest first
func (r *GormTradeTransactionRepository) ItemHistory(ctx context.Context, direction ledger.Direction, itemID uuid.UUID) ([]ledger.ItemHistoryEntry, error) {
	var rows []itemHistoryRow
	err := r.db.WithContext(ctx).
		Table("transaction_details AS d").
		Select("d.transaction_id, d.id AS detail_id, t.transaction_date, d.quantity_yard, d.quantity_roll, d.returned_yard, d.returned_roll, d.unit_price").
		Joins("JOIN trade_transactions t ON t.id = d.transaction_id").
		Where("t.direction = ? AND d.item_id = ?", direction, itemID).
		Order("t.transaction_date DESC, d.line_no ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.ItemHistoryEntry, len(rows))
	for i, row := range rows {
		detail := ledger.TransactionDetail{
			Quantity:  ledger.NewQuantity(row.QuantityYard, row.QuantityRoll),
			Returned:  ledger.NewQuantity(row.ReturnedYard, row.ReturnedRoll),
			UnitPrice: row.UnitPrice,
		}
		entries[i] = ledger.ItemHistoryEntry{
			TransactionID:   row.TransactionID,
			DetailID:        row.DetailID,
			TransactionDate: time.Time(row.TransactionDate),
			Quantity:        detail.Quantity,
			Returned:        detail.Returned,
			UnitPrice:       row.UnitPrice,
			LineAmount:      detail.LineAmount(),
		}
	}
	return entries, nil
}
