package models

import (
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/catalog"
)

// ItemModel is the persistence model for stock items
type ItemModel struct {
	BaseModel
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_items_code"`
	Name      string          `gorm:"type:varchar(200);not null"`
	StockYard decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockRoll decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		StockYard:  m.StockYard,
		StockRoll:  m.StockRoll,
	}
}

// FromDomain populates the persistence model from a domain Item
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.Code = i.Code
	m.Name = i.Name
	m.StockYard = i.StockYard
	m.StockRoll = i.StockRoll
}

// ItemModelFromDomain creates a persistence model from a domain Item
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
