package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData is the view model the receipt templates are written against
type ReceiptData struct {
	StoreName         string
	Title             string
	Number            string
	Date              string
	CounterpartyLabel string
	Counterparty      string
	PaymentLabel      string
	Lines             []ReceiptLine
	Subtotal          decimal.Decimal
	DiscountAmount    decimal.Decimal
	TaxAmount         decimal.Decimal
	ReturnedAmount    decimal.Decimal
	Total             decimal.Decimal
	Installments      []ReceiptInstallment
	PaidAmount        decimal.Decimal
	Note              string
	PrintedAt         time.Time
}

// ReceiptLine is one printed transaction line
type ReceiptLine struct {
	No         int
	ItemName   string
	Yard       decimal.Decimal
	Roll       decimal.Decimal
	UnitPrice  decimal.Decimal
	Amount     decimal.Decimal
	ReturnYard decimal.Decimal
	ReturnRoll decimal.Decimal
	HasReturn  bool
}

// ReceiptInstallment is one printed schedule entry
type ReceiptInstallment struct {
	No         int
	DueDate    string
	AmountPaid decimal.Decimal
	Paid       bool
}
