package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"gorm.io/datatypes"
)

// TradeTransactionModel is the header row of a sale or purchase
type TradeTransactionModel struct {
	BaseModel
	Direction       ledger.Direction      `gorm:"type:varchar(10);not null;index:idx_trade_direction_date,priority:1"`
	CounterpartyID  *uuid.UUID            `gorm:"type:uuid;index"`
	TransactionDate datatypes.Date        `gorm:"not null;index:idx_trade_direction_date,priority:2"`
	PaymentStatus   ledger.PaymentStatus  `gorm:"type:varchar(20);not null"`
	DiscountType    ledger.AdjustmentType `gorm:"type:varchar(10);not null;default:'flat'"`
	DiscountValue   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxType         ledger.AdjustmentType `gorm:"type:varchar(10);not null;default:'flat'"`
	TaxValue        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Total           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Note            string                `gorm:"type:text"`
	CreatedBy       *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TradeTransactionModel) TableName() string {
	return "trade_transactions"
}

// ToDomain converts the header to a domain transaction without lines or schedule
func (m *TradeTransactionModel) ToDomain() *ledger.TradeTransaction {
	return &ledger.TradeTransaction{
		BaseEntity: m.BaseModel.ToDomain(),
		Direction:  m.Direction,
		Header: ledger.Header{
			CounterpartyID:  m.CounterpartyID,
			TransactionDate: time.Time(m.TransactionDate),
			PaymentStatus:   m.PaymentStatus,
			Discount:        ledger.Adjustment{Type: m.DiscountType, Value: m.DiscountValue},
			Tax:             ledger.Adjustment{Type: m.TaxType, Value: m.TaxValue},
			Note:            m.Note,
		},
		Total:     m.Total,
		CreatedBy: m.CreatedBy,
	}
}

// FromDomain populates the header from a domain transaction
func (m *TradeTransactionModel) FromDomain(t *ledger.TradeTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Direction = t.Direction
	m.CounterpartyID = t.CounterpartyID
	m.TransactionDate = datatypes.Date(t.TransactionDate)
	m.PaymentStatus = t.PaymentStatus
	m.DiscountType = t.Discount.Type
	m.DiscountValue = t.Discount.Value
	m.TaxType = t.Tax.Type
	m.TaxValue = t.Tax.Value
	m.Total = t.Total
	m.Note = t.Note
	m.CreatedBy = t.CreatedBy
}

// TradeTransactionModelFromDomain creates a header model from a domain transaction
func TradeTransactionModelFromDomain(t *ledger.TradeTransaction) *TradeTransactionModel {
	m := &TradeTransactionModel{}
	m.FromDomain(t)
	return m
}

// TransactionDetailModel is one line of a trade transaction
type TransactionDetailModel struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo        int             `gorm:"not null"`
	ItemID        *uuid.UUID      `gorm:"type:uuid;index"`
	QuantityYard  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityRoll  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnedYard  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnedRoll  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TransactionDetailModel) TableName() string {
	return "transaction_details"
}

// ToDomain converts the persistence model to a domain detail
func (m *TransactionDetailModel) ToDomain() ledger.TransactionDetail {
	return ledger.TransactionDetail{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		LineNo:        m.LineNo,
		ItemID:        m.ItemID,
		Quantity:      ledger.NewQuantity(m.QuantityYard, m.QuantityRoll),
		UnitPrice:     m.UnitPrice,
		Returned:      ledger.NewQuantity(m.ReturnedYard, m.ReturnedRoll),
	}
}

// TransactionDetailModelFromDomain creates a persistence model from a domain detail
func TransactionDetailModelFromDomain(d *ledger.TransactionDetail) *TransactionDetailModel {
	return &TransactionDetailModel{
		BaseModel:     BaseModel{ID: d.ID},
		TransactionID: d.TransactionID,
		LineNo:        d.LineNo,
		ItemID:        d.ItemID,
		QuantityYard:  d.Quantity.Yard,
		QuantityRoll:  d.Quantity.Roll,
		UnitPrice:     d.UnitPrice,
		ReturnedYard:  d.Returned.Yard,
		ReturnedRoll:  d.Returned.Roll,
	}
}

// InstallmentModel is one entry of an installment schedule
type InstallmentModel struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	DueDate       datatypes.Date  `gorm:"not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain installment
func (m *InstallmentModel) ToDomain() ledger.Installment {
	return ledger.Installment{
		BaseEntity:    m.BaseModel.ToDomain(),
		TransactionID: m.TransactionID,
		DueDate:       time.Time(m.DueDate),
		AmountPaid:    m.AmountPaid,
	}
}

// InstallmentModelFromDomain creates a persistence model from a domain installment
func InstallmentModelFromDomain(i *ledger.Installment) *InstallmentModel {
	m := &InstallmentModel{
		TransactionID: i.TransactionID,
		DueDate:       datatypes.Date(i.DueDate),
		AmountPaid:    i.AmountPaid,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// MovementModel is one row of the ledger journal
type MovementModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key"`
	Kind          ledger.MovementKind `gorm:"type:varchar(10);not null;index"`
	Operation     ledger.Operation    `gorm:"type:varchar(20);not null"`
	Direction     string              `gorm:"type:varchar(10)"`
	TransactionID *uuid.UUID          `gorm:"type:uuid;index"`
	DetailID      *uuid.UUID          `gorm:"type:uuid"`
	ItemID        *uuid.UUID          `gorm:"type:uuid;index"`
	ExpenseID     *uuid.UUID          `gorm:"type:uuid"`
	QuantityYard  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityRoll  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Amount        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Meta          datatypes.JSONMap
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "ledger_movements"
}

// ToDomain converts the persistence model to a domain movement
func (m *MovementModel) ToDomain() ledger.Movement {
	return ledger.Movement{
		ID:            m.ID,
		Kind:          m.Kind,
		Operation:     m.Operation,
		Direction:     ledger.Direction(m.Direction),
		TransactionID: m.TransactionID,
		DetailID:      m.DetailID,
		ItemID:        m.ItemID,
		ExpenseID:     m.ExpenseID,
		Quantity:      ledger.NewQuantity(m.QuantityYard, m.QuantityRoll),
		Amount:        m.Amount,
		Meta:          map[string]any(m.Meta),
		CreatedAt:     m.CreatedAt,
	}
}

// MovementModelFromDomain creates a persistence model from a domain movement
func MovementModelFromDomain(mv *ledger.Movement) *MovementModel {
	m := &MovementModel{
		ID:            mv.ID,
		Kind:          mv.Kind,
		Operation:     mv.Operation,
		Direction:     string(mv.Direction),
		TransactionID: mv.TransactionID,
		DetailID:      mv.DetailID,
		ItemID:        mv.ItemID,
		ExpenseID:     mv.ExpenseID,
		QuantityYard:  mv.Quantity.Yard,
		QuantityRoll:  mv.Quantity.Roll,
		Amount:        mv.Amount,
		CreatedAt:     mv.CreatedAt,
	}
	if len(mv.Meta) > 0 {
		m.Meta = datatypes.JSONMap(mv.Meta)
	}
	return m
}
