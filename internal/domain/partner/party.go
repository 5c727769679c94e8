package partner

import (
	"strings"

	"github.com/tekstil/ledger/internal/domain/shared"
)

// Kind separates customers from suppliers. Both live in one table.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindSupplier Kind = "supplier"
)

// ParseKind parses a route value, accepting plural forms
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "customer", "customers":
		return KindCustomer, nil
	case "supplier", "suppliers":
		return KindSupplier, nil
	}
	return "", ErrInvalidKind
}

// IsValid reports whether k is known
func (k Kind) IsValid() bool {
	return k == KindCustomer || k == KindSupplier
}

// Errors raised by party rules
var (
	ErrInvalidKind       = shared.ErrInvalidInput.WithMessage("Party kind must be customer or supplier")
	ErrPartyNameRequired = shared.ErrInvalidInput.WithMessage("Name is required")
	ErrPartyInUse        = shared.NewDomainError("PARTY_IN_USE", "Party is referenced by a transaction and cannot be deleted")
	ErrPartyNotFound     = shared.ErrNotFound.WithMessage("Party not found")
)

// Party is a customer or a supplier
type Party struct {
	shared.BaseEntity
	Kind  Kind
	Name  string
	Phone string
}

// NewParty creates a party
func NewParty(kind Kind, name, phone string) (*Party, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	p := &Party{BaseEntity: shared.NewBaseEntity(), Kind: kind}
	if err := p.Update(name, phone); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes name and phone
func (p *Party) Update(name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrPartyNameRequired
	}
	p.Name = name
	p.Phone = strings.TrimSpace(phone)
	p.Touch()
	return nil
}
