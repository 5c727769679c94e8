package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// Errors raised by expense rules
var (
	ErrExpenseCategoryRequired = shared.ErrInvalidInput.WithMessage("Expense category is required")
	ErrExpenseAmountInvalid    = shared.ErrInvalidInput.WithMessage("Expense amount must be greater than zero")
	ErrExpenseNotFound         = shared.ErrNotFound.WithMessage("Expense not found")
)

// Expense is an operational cost paid from the cash balance
type Expense struct {
	shared.BaseEntity
	Category    string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Note        string
	CreatedBy   *uuid.UUID
}

// NewExpense creates an expense
func NewExpense(category string, amount decimal.Decimal, date time.Time, note string, createdBy *uuid.UUID) (*Expense, error) {
	e := &Expense{BaseEntity: shared.NewBaseEntity(), CreatedBy: createdBy}
	if err := e.Update(category, amount, date, note); err != nil {
		return nil, err
	}
	return e, nil
}

// Update changes the expense. A zero date means today.
func (e *Expense) Update(category string, amount decimal.Decimal, date time.Time, note string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrExpenseCategoryRequired
	}
	if !amount.IsPositive() {
		return ErrExpenseAmountInvalid
	}
	if date.IsZero() {
		date = time.Now()
	}
	e.Category = category
	e.Amount = amount
	e.ExpenseDate = date
	e.Note = strings.TrimSpace(note)
	e.Touch()
	return nil
}
