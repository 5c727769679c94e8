package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, catalog.ErrItemNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an item with its row locked until commit
func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err, catalog.ErrItemNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll lists items, searching code and name
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ItemModel
	err := r.filtered(ctx, filter).
		Order(orderClause(filter.OrderBy, orderDirOr(filter.OrderDir, "ASC"), ItemSortFields, "code")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *GormItemRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", p, p)
	}
	return query
}

// FindNames returns display names keyed by item ID
func (r *GormItemRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Select("id, name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// ExistsByCode checks whether another item already uses the code
func (r *GormItemRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).Where("code = ?", code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new item
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	err := r.db.WithContext(ctx).Create(models.ItemModelFromDomain(item)).Error
	if isUniqueViolation(err) {
		return catalog.ErrItemCodeTaken
	}
	return err
}

// Save updates code and name. Stock is only changed through AdjustStock.
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	result := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"code":       item.Code,
			"name":       item.Name,
			"updated_at": item.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return catalog.ErrItemCodeTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrItemNotFound
	}
	return nil
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrItemNotFound
	}
	return nil
}

// AdjustStock adds the deltas to on-hand stock in a single statement
func (r *GormItemRepository) AdjustStock(ctx context.Context, id uuid.UUID, yard, roll decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"stock_yard": gorm.Expr("stock_yard + ?", yard),
			"stock_roll": gorm.Expr("stock_roll + ?", roll),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func orderDirOr(dir, fallback string) string {
	if dir == "" {
		return fallback
	}
	return dir
}
