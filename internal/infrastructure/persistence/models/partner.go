package models

import "github.com/tekstil/ledger/internal/domain/partner"

// PartyModel stores customers and suppliers in one table, separated by kind
type PartyModel struct {
	BaseModel
	Kind  partner.Kind `gorm:"type:varchar(10);not null;index"`
	Name  string       `gorm:"type:varchar(200);not null"`
	Phone string       `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}

// ToDomain converts the persistence model to a domain Party
func (m *PartyModel) ToDomain() *partner.Party {
	return &partner.Party{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       m.Kind,
		Name:       m.Name,
		Phone:      m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Party
func (m *PartyModel) FromDomain(p *partner.Party) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Kind = p.Kind
	m.Name = p.Name
	m.Phone = p.Phone
}

// PartyModelFromDomain creates a persistence model from a domain Party
func PartyModelFromDomain(p *partner.Party) *PartyModel {
	m := &PartyModel{}
	m.FromDomain(p)
	return m
}
