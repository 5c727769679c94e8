package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByIDForUpdate finds an item with its row locked until commit
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindAll lists items, searching code and name
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, int64, error)

	// FindNames returns display names keyed by item ID
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// ExistsByCode checks whether another item already uses the code
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)

	Create(ctx context.Context, item *Item) error
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock adds the deltas to on-hand stock in a single statement.
	// Returns false when the item does not exist.
	AdjustStock(ctx context.Context, id uuid.UUID, yard, roll decimal.Decimal) (bool, error)
}
