package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// ItemUsage tells whether any transaction line references an item
type ItemUsage interface {
	ExistsForItem(ctx context.Context, itemID uuid.UUID) (bool, error)
}

// ItemService handles item-related business operations
type ItemService struct {
	itemRepo catalog.ItemRepository
	usage    ItemUsage
	scope    TransactionScope
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, usage ItemUsage, scope TransactionScope) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		usage:    usage,
		scope:    scope,
	}
}

// Create creates a new item with zero stock
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.itemRepo.ExistsByCode(ctx, item.Code, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, catalog.ErrItemCodeTaken
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves a page of items, searching code and name
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) (shared.Paginated[ItemResponse], error) {
	domainFilter := filter.toDomain()
	items, total, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}
	return shared.NewPaginated(ToItemResponses(items), total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update changes code and name
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code, name := item.Code, item.Name
	if req.Code != nil {
		code = *req.Code
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name = *req.Name
	}
	if err := item.Rename(code, name); err != nil {
		return nil, err
	}

	exists, err := s.itemRepo.ExistsByCode(ctx, item.Code, &item.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, catalog.ErrItemCodeTaken
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item that no transaction line references
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	used, err := s.usage.ExistsForItem(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return catalog.ErrItemInUse
	}
	return s.itemRepo.Delete(ctx, id)
}

// CorrectStock sets on-hand stock to counted values. The difference is
// applied as a relative change and journaled as a correction.
func (s *ItemService) CorrectStock(ctx context.Context, id uuid.UUID, req CorrectStockRequest) (*ItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "correct_stock",
		telemetry.SpanAttrItemID, id.String(),
	)
	defer span.End()

	target := ledger.NewQuantity(req.StockYard, req.StockRoll)
	if target.IsNegative() {
		return nil, ledger.ErrInvalidQuantity
	}

	var item *catalog.Item
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.Items().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		delta := target.Sub(ledger.NewQuantity(item.StockYard, item.StockRoll))
		if delta.IsZero() {
			return nil
		}
		if _, err := repos.Items().AdjustStock(ctx, id, delta.Yard, delta.Roll); err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}

		movement := ledger.NewStockMovement(ledger.OperationCorrection, "", nil, nil, id, delta)
		if note := strings.TrimSpace(req.Note); note != "" {
			movement = movement.WithMeta("note", note)
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}

		item.StockYard = target.Yard
		item.StockRoll = target.Roll
		logger.L(ctx).Info("Stock corrected",
			zap.String("item_id", id.String()),
			zap.String("delta_yard", delta.Yard.String()),
			zap.String("delta_roll", delta.Roll.String()),
		)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}
