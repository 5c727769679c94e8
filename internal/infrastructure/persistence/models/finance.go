package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/finance"
	"gorm.io/datatypes"
)

// CashBalanceModel is the singleton cash-balance row
type CashBalanceModel struct {
	ID        int             `gorm:"primaryKey;autoIncrement:false"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CashBalanceModel) TableName() string {
	return "cash_balances"
}

// ToDomain converts the persistence model to a domain CashBalance
func (m *CashBalanceModel) ToDomain() *finance.CashBalance {
	return &finance.CashBalance{ID: m.ID, Amount: m.Amount, UpdatedAt: m.UpdatedAt}
}

// CashBalanceModelFromDomain creates a persistence model from a domain CashBalance
func CashBalanceModelFromDomain(b *finance.CashBalance) *CashBalanceModel {
	return &CashBalanceModel{ID: b.ID, Amount: b.Amount, UpdatedAt: b.UpdatedAt}
}

// ExpenseModel is the persistence model for operational expenses
type ExpenseModel struct {
	BaseModel
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpenseDate datatypes.Date  `gorm:"not null;index"`
	Note        string          `gorm:"type:text"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		Category:    m.Category,
		Amount:      m.Amount,
		ExpenseDate: time.Time(m.ExpenseDate),
		Note:        m.Note,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Category = e.Category
	m.Amount = e.Amount
	m.ExpenseDate = datatypes.Date(e.ExpenseDate)
	m.Note = e.Note
	m.CreatedBy = e.CreatedBy
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
