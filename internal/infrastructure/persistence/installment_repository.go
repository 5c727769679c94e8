package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

var _ ledger.InstallmentRepository = (*GormInstallmentRepository)(nil)

// FindByTransaction returns the schedule ordered by due date
func (r *GormInstallmentRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]ledger.Installment, error) {
	var rows []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("due_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]ledger.Installment, len(rows))
	for i := range rows {
		list[i] = rows[i].ToDomain()
	}
	return list, nil
}

// Create inserts schedule entries
func (r *GormInstallmentRepository) Create(ctx context.Context, list []ledger.Installment) error {
	if len(list) == 0 {
		return nil
	}
	rows := make([]*models.InstallmentModel, len(list))
	for i := range list {
		rows[i] = models.InstallmentModelFromDomain(&list[i])
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error, nil)
}

// Save writes due date and paid amount
func (r *GormInstallmentRepository) Save(ctx context.Context, inst *ledger.Installment) error {
	result := r.db.WithContext(ctx).Model(&models.InstallmentModel{}).
		Where("id = ? AND transaction_id = ?", inst.ID, inst.TransactionID).
		Updates(map[string]any{
			"due_date":    datatypes.Date(inst.DueDate),
			"amount_paid": inst.AmountPaid,
			"updated_at":  inst.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrInstallmentNotFound
	}
	return nil
}

// Delete removes schedule entries by id
func (r *GormInstallmentRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.InstallmentModel{}).Error
}

// DeleteByTransaction removes the whole schedule of a transaction
func (r *GormInstallmentRepository) DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&models.InstallmentModel{}).Error
}
