package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// Errors raised by item rules
var (
	ErrItemCodeRequired = shared.ErrInvalidInput.WithMessage("Item code is required")
	ErrItemNameRequired = shared.ErrInvalidInput.WithMessage("Item name is required")
	ErrItemCodeTaken    = shared.ErrAlreadyExists.WithMessage("Item code already exists")
	ErrItemInUse        = shared.NewDomainError("ITEM_IN_USE", "Item is referenced by a transaction and cannot be deleted")
	ErrItemNotFound     = shared.ErrNotFound.WithMessage("Item not found")
)

// Item is a stock-keeping unit of cloth. On-hand stock is tracked in yard and roll
// and may go negative; postings never refuse on low stock.
type Item struct {
	shared.BaseEntity
	Code      string
	Name      string
	StockYard decimal.Decimal
	StockRoll decimal.Decimal
}

// NewItem creates an item with zero stock
func NewItem(code, name string) (*Item, error) {
	item := &Item{
		BaseEntity: shared.NewBaseEntity(),
		StockYard:  decimal.Zero,
		StockRoll:  decimal.Zero,
	}
	if err := item.Rename(code, name); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename changes code and name
func (i *Item) Rename(code, name string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return ErrItemCodeRequired
	}
	if name == "" {
		return ErrItemNameRequired
	}
	i.Code = code
	i.Name = name
	i.Touch()
	return nil
}
