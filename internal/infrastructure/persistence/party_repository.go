package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyRepository implements PartyRepository using GORM.
// Customers and suppliers share one table keyed by kind.
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

var _ partner.PartyRepository = (*GormPartyRepository)(nil)

// FindByID finds a party of the given kind
func (r *GormPartyRepository) FindByID(ctx context.Context, kind partner.Kind, id uuid.UUID) (*partner.Party, error) {
	var model models.PartyModel
	if err := r.db.WithContext(ctx).Where("id = ? AND kind = ?", id, kind).First(&model).Error; err != nil {
		return nil, translateError(err, partner.ErrPartyNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll lists parties of a kind, searching name and phone
func (r *GormPartyRepository) FindAll(ctx context.Context, kind partner.Kind, filter shared.Filter) ([]partner.Party, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, kind, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PartyModel
	err := r.filtered(ctx, kind, filter).
		Order(orderClause(filter.OrderBy, orderDirOr(filter.OrderDir, "ASC"), PartySortFields, "name")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	parties := make([]partner.Party, len(rows))
	for i := range rows {
		parties[i] = *rows[i].ToDomain()
	}
	return parties, total, nil
}

func (r *GormPartyRepository) filtered(ctx context.Context, kind partner.Kind, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.PartyModel{}).Where("kind = ?", kind)
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ?", p, p)
	}
	return query
}

// FindNames returns display names keyed by party ID
func (r *GormPartyRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).Model(&models.PartyModel{}).
		Select("id, name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Create inserts a new party
func (r *GormPartyRepository) Create(ctx context.Context, party *partner.Party) error {
	return translateError(r.db.WithContext(ctx).Create(models.PartyModelFromDomain(party)).Error, nil)
}

// Save updates name and phone
func (r *GormPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	result := r.db.WithContext(ctx).Model(&models.PartyModel{}).
		Where("id = ? AND kind = ?", party.ID, party.Kind).
		Updates(map[string]any{
			"name":       party.Name,
			"phone":      party.Phone,
			"updated_at": party.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return partner.ErrPartyNotFound
	}
	return nil
}

// Delete removes a party
func (r *GormPartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PartyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return partner.ErrPartyNotFound
	}
	return nil
}
