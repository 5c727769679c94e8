package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
// The journal is append-only.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

var _ ledger.MovementRepository = (*GormMovementRepository)(nil)

// Append writes journal entries in one batch
func (r *GormMovementRepository) Append(ctx context.Context, movements ...ledger.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.MovementModel, len(movements))
	for i := range movements {
		rows[i] = models.MovementModelFromDomain(&movements[i])
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByTransaction lists the journal entries of a transaction in the order they were written
func (r *GormMovementRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]ledger.Movement, error) {
	var rows []models.MovementModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]ledger.Movement, len(rows))
	for i := range rows {
		list[i] = rows[i].ToDomain()
	}
	return list, nil
}
