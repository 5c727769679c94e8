package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AdjustmentType is how a discount or tax value is interpreted
type AdjustmentType string

const (
	AdjustmentFlat    AdjustmentType = "flat"
	AdjustmentPercent AdjustmentType = "percent"
)

var hundred = decimal.NewFromInt(100)

// ParseAdjustmentType accepts "percent" (or the legacy "persen"); anything else is flat
func ParseAdjustmentType(raw string) AdjustmentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "percent", "persen", "%":
		return AdjustmentPercent
	default:
		return AdjustmentFlat
	}
}

// Adjustment is a discount or tax line
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

// NewAdjustment creates an adjustment from raw request values
func NewAdjustment(rawType string, value decimal.Decimal) Adjustment {
	return Adjustment{Type: ParseAdjustmentType(rawType), Value: value}
}

// AmountOn returns the money amount of the adjustment against base.
// Non-positive values contribute nothing.
func (a Adjustment) AmountOn(base decimal.Decimal) decimal.Decimal {
	if !a.Value.IsPositive() {
		return decimal.Zero
	}
	if a.Type == AdjustmentPercent {
		return base.Mul(a.Value).Div(hundred)
	}
	return a.Value
}
