package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Note        string          `json:"note" binding:"max=500"`
	CreatedBy   *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// UpdateExpenseRequest represents a request to update an expense.
// Fields left out keep their current value.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *string          `json:"expense_date"`
	Note        *string          `json:"note" binding:"omitempty,max=500"`
}

// ExpenseListFilter represents filter options for expense list
type ExpenseListFilter struct {
	Search   string `form:"search"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Note        string          `json:"note"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse is a page of expenses plus the total of every match
type ExpenseListResponse struct {
	shared.Paginated[ExpenseResponse]
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SetCashBalanceRequest sets the cash balance to an absolute amount
type SetCashBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" binding:"max=500"`
}

// CashBalanceResponse represents the cash balance in API responses
type CashBalanceResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		ExpenseDate: shared.FormatDate(e.ExpenseDate),
		Note:        e.Note,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToExpenseResponses converts a slice of domain expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}

func (f ExpenseListFilter) toDomain() (finance.ExpenseFilter, error) {
	filter := finance.ExpenseFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
			OrderBy:  f.OrderBy,
			OrderDir: f.OrderDir,
		}.Normalize(),
	}
	if f.DateFrom != "" {
		from, err := shared.ParseDate(f.DateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if f.DateTo != "" {
		to, err := shared.ParseDate(f.DateTo)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}
	return filter, nil
}
