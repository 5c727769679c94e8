package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// CreateItemRequest represents a request to create a new item
type CreateItemRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50"`
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// UpdateItemRequest represents a request to update an item.
// Fields left out keep their current value.
type UpdateItemRequest struct {
	Code *string `json:"code" binding:"omitempty,min=1,max=50"`
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
}

// CorrectStockRequest sets the on-hand stock of an item after a physical count
type CorrectStockRequest struct {
	StockYard decimal.Decimal `json:"stock_yard"`
	StockRoll decimal.Decimal `json:"stock_roll"`
	Note      string          `json:"note" binding:"max=500"`
}

// ItemListFilter represents filter options for item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	StockYard decimal.Decimal `json:"stock_yard"`
	StockRoll decimal.Decimal `json:"stock_roll"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Code:      i.Code,
		Name:      i.Name,
		StockYard: i.StockYard,
		StockRoll: i.StockRoll,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

func (f ItemListFilter) toDomain() shared.Filter {
	return shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		Search:   f.Search,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
	}.Normalize()
}
