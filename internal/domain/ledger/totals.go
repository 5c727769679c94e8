package ledger

import "github.com/shopspring/decimal"

// Totals is the money breakdown of a transaction
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// MoneyScale is the number of decimal places money columns keep
const MoneyScale = 4

// ComputeTotals applies discount to the subtotal and tax to what remains.
// Every amount is rounded to MoneyScale so the result equals what is stored.
func ComputeTotals(subtotal decimal.Decimal, discount, tax Adjustment) Totals {
	subtotal = subtotal.Round(MoneyScale)
	discountAmount := discount.AmountOn(subtotal).Round(MoneyScale)
	taxable := subtotal.Sub(discountAmount)
	taxAmount := tax.AmountOn(taxable).Round(MoneyScale)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          taxable.Add(taxAmount),
	}
}

// Subtotal sums yard quantity times unit price. Rolls are not priced.
func Subtotal(details []TransactionDetail) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range details {
		sum = sum.Add(d.LineAmount())
	}
	return sum
}
