package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tekstil/ledger/internal/domain/partner"
)

func TestComputeTotals(t *testing.T) {
	t.Run("percent discount then flat tax", func(t *testing.T) {
		totals := ComputeTotals(d(10000), NewAdjustment("percent", d(10)), NewAdjustment("flat", d(500)))

		assert.True(t, totals.Subtotal.Equal(d(10000)))
		assert.True(t, totals.DiscountAmount.Equal(d(1000)))
		assert.True(t, totals.TaxAmount.Equal(d(500)))
		assert.True(t, totals.Total.Equal(d(9500)))
	})

	t.Run("percent tax applies to the discounted amount", func(t *testing.T) {
		totals := ComputeTotals(d(1000), NewAdjustment("flat", d(200)), NewAdjustment("persen", d(10)))

		assert.True(t, totals.DiscountAmount.Equal(d(200)))
		assert.True(t, totals.TaxAmount.Equal(d(80)))
		assert.True(t, totals.Total.Equal(d(880)))
	})

	t.Run("non-positive values contribute nothing", func(t *testing.T) {
		totals := ComputeTotals(d(1000), NewAdjustment("percent", d(0)), NewAdjustment("flat", d(-5)))

		assert.True(t, totals.DiscountAmount.IsZero())
		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, totals.Total.Equal(d(1000)))
	})

	t.Run("fractional percent", func(t *testing.T) {
		totals := ComputeTotals(d(333), NewAdjustment("percent", decimal.RequireFromString("2.5")), Adjustment{})

		assert.Equal(t, "8.325", totals.DiscountAmount.String())
		assert.Equal(t, "324.675", totals.Total.String())
	})

	t.Run("rounds amounts to the money scale", func(t *testing.T) {
		totals := ComputeTotals(d(100),
			NewAdjustment("percent", decimal.RequireFromString("12.34567")),
			NewAdjustment("percent", d(10)))

		assert.Equal(t, "12.3457", totals.DiscountAmount.String())
		assert.Equal(t, "8.7654", totals.TaxAmount.String())
		assert.Equal(t, "96.4197", totals.Total.String())
		assert.True(t, totals.Total.Equal(totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)))
	})
}

func TestSubtotal_PricesYardOnly(t *testing.T) {
	details := []TransactionDetail{
		{Quantity: qty(5, 2), UnitPrice: d(100)},
		{Quantity: qty(3, 9), UnitPrice: d(200)},
	}
	assert.True(t, Subtotal(details).Equal(d(1100)))
}

func TestParseAdjustmentType(t *testing.T) {
	assert.Equal(t, AdjustmentPercent, ParseAdjustmentType("percent"))
	assert.Equal(t, AdjustmentPercent, ParseAdjustmentType("Persen"))
	assert.Equal(t, AdjustmentFlat, ParseAdjustmentType("flat"))
	assert.Equal(t, AdjustmentFlat, ParseAdjustmentType(""))
}

func TestParsePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentInstallment, ParsePaymentStatus("installment"))
	assert.Equal(t, PaymentInstallment, ParsePaymentStatus("1"))
	assert.Equal(t, PaymentImmediate, ParsePaymentStatus("0"))
	assert.Equal(t, PaymentImmediate, ParsePaymentStatus("lunas"))
}

func TestDirection_Signs(t *testing.T) {
	tests := []struct {
		direction Direction
		stock     int64
		cash      int64
		kind      partner.Kind
	}{
		{DirectionOutbound, -1, 1, partner.KindCustomer},
		{DirectionInbound, 1, -1, partner.KindSupplier},
	}
	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			assert.True(t, tt.direction.StockSign().Equal(d(tt.stock)))
			assert.True(t, tt.direction.CashSign().Equal(d(tt.cash)))
			assert.Equal(t, tt.kind, tt.direction.CounterpartyKind())
		})
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
	dir, err := ParseDirection(" Inbound ")
	assert.NoError(t, err)
	assert.Equal(t, DirectionInbound, dir)
}
