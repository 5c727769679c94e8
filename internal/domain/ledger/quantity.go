package ledger

import "github.com/shopspring/decimal"

// Quantity is an amount of cloth in the two units the warehouse counts:
// yard (continuous length) and roll (whole bolts).
type Quantity struct {
	Yard decimal.Decimal
	Roll decimal.Decimal
}

// NewQuantity creates a quantity
func NewQuantity(yard, roll decimal.Decimal) Quantity {
	return Quantity{Yard: yard, Roll: roll}
}

// Add returns q + o
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{Yard: q.Yard.Add(o.Yard), Roll: q.Roll.Add(o.Roll)}
}

// Sub returns q - o
func (q Quantity) Sub(o Quantity) Quantity {
	return Quantity{Yard: q.Yard.Sub(o.Yard), Roll: q.Roll.Sub(o.Roll)}
}

// Scale multiplies both units by f
func (q Quantity) Scale(f decimal.Decimal) Quantity {
	return Quantity{Yard: q.Yard.Mul(f), Roll: q.Roll.Mul(f)}
}

// Neg returns -q
func (q Quantity) Neg() Quantity {
	return Quantity{Yard: q.Yard.Neg(), Roll: q.Roll.Neg()}
}

// IsZero reports whether both units are zero
func (q Quantity) IsZero() bool {
	return q.Yard.IsZero() && q.Roll.IsZero()
}

// IsNegative reports whether either unit is below zero
func (q Quantity) IsNegative() bool {
	return q.Yard.IsNegative() || q.Roll.IsNegative()
}

// Exceeds reports whether either unit of q is greater than the same unit of limit
func (q Quantity) Exceeds(limit Quantity) bool {
	return q.Yard.GreaterThan(limit.Yard) || q.Roll.GreaterThan(limit.Roll)
}

// Equal compares both units
func (q Quantity) Equal(o Quantity) bool {
	return q.Yard.Equal(o.Yard) && q.Roll.Equal(o.Roll)
}
