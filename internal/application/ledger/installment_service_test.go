package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
)

func TestInstallmentService_Pay(t *testing.T) {
	ctx := context.Background()
	dates := []string{"2024-06-01", "2024-07-01"}

	newInstallmentTrx := func(t *testing.T, f *ledgerFixture, direction ledger.Direction) *ledger.TradeTransaction {
		t.Helper()
		created, err := f.posting.Create(ctx, direction,
			installment(2, dates, appledger.DetailInput{QuantityYard: dec(10), UnitPrice: dec(100)}), nil)
		require.NoError(t, err)
		return f.load(t, direction, created.ID)
	}

	t.Run("moves cash by the change of each payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.setCash(t, 2000)
		trx := newInstallmentTrx(t, f, ledger.DirectionInbound)
		first := trx.Installments[0].ID

		list, err := f.installments.Pay(ctx, ledger.DirectionInbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: first, AmountPaid: dec(300)}},
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first, list[0].ID)
		assert.True(t, list[0].Paid)
		assert.False(t, list[1].Paid)
		assertDecimal(t, 1700, f.cashAmount(t), "cash after first payment")

		_, err = f.installments.Pay(ctx, ledger.DirectionInbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: first, AmountPaid: dec(500)}},
		})
		require.NoError(t, err)
		assertDecimal(t, 1500, f.cashAmount(t), "cash after correction")
	})

	t.Run("undoing a payment allows the delete", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)

		_, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: trx.Installments[1].ID, AmountPaid: dec(250)}},
		})
		require.NoError(t, err)
		assertDecimal(t, 250, f.cashAmount(t), "cash")

		_, err = f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: trx.Installments[1].ID, AmountPaid: dec(0)}},
		})
		require.NoError(t, err)
		require.NoError(t, f.posting.Delete(ctx, ledger.DirectionOutbound, trx.ID))
		assertDecimal(t, 0, f.cashAmount(t), "cash")
	})

	t.Run("rebuilds the schedule while nothing is paid", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)

		list, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			TenorDates: []string{"2024-09-01", "2024-10-01", "2024-11-01"},
		})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "2024-09-01", list[0].DueDate)
		assert.Equal(t, "2024-11-01", list[2].DueDate)
		assert.Len(t, f.load(t, ledger.DirectionOutbound, trx.ID).Installments, 3)
	})

	t.Run("re-dates a paid schedule of the same length", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)
		first := trx.Installments[0].ID

		list, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments:   []appledger.PaymentInput{{ID: first, AmountPaid: dec(100)}},
			TenorDates: []string{"2024-06-10", "2024-07-10"},
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first, list[0].ID)
		assert.Equal(t, "2024-06-10", list[0].DueDate)
		assert.Equal(t, "2024-07-10", list[1].DueDate)

		stored := f.load(t, ledger.DirectionOutbound, trx.ID)
		assert.Equal(t, "2024-07-10", shared.FormatDate(stored.Installments[1].DueDate))
		assertDecimal(t, 100, stored.Installments[0].AmountPaid, "paid")
	})

	t.Run("locks the count once something is paid", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)

		_, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments:   []appledger.PaymentInput{{ID: trx.Installments[0].ID, AmountPaid: dec(100)}},
			TenorDates: []string{"2024-09-01"},
		})
		assert.ErrorIs(t, err, ledger.ErrScheduleLocked)

		stored := f.load(t, ledger.DirectionOutbound, trx.ID)
		assert.Len(t, stored.Installments, 2)
		assert.False(t, stored.HasPaidInstallments())
		assertDecimal(t, 0, f.cashAmount(t), "cash")
	})

	t.Run("refuses an immediate transaction", func(t *testing.T) {
		f := newLedgerFixture(t)
		created, err := f.posting.Create(ctx, ledger.DirectionOutbound,
			immediate(appledger.DetailInput{QuantityYard: dec(1), UnitPrice: dec(1)}), nil)
		require.NoError(t, err)

		_, err = f.installments.Pay(ctx, ledger.DirectionOutbound, created.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: uuid.New(), AmountPaid: dec(1)}},
		})
		assert.ErrorIs(t, err, ledger.ErrNotInstallment)
	})

	t.Run("refuses an entry of another transaction", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)
		other := newInstallmentTrx(t, f, ledger.DirectionOutbound)

		_, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{
				{ID: trx.Installments[0].ID, AmountPaid: dec(100)},
				{ID: other.Installments[0].ID, AmountPaid: dec(100)},
			},
		})
		assert.ErrorIs(t, err, ledger.ErrInstallmentNotFound)
		assert.False(t, f.load(t, ledger.DirectionOutbound, trx.ID).HasPaidInstallments())
	})

	t.Run("refuses a negative payment", func(t *testing.T) {
		f := newLedgerFixture(t)
		trx := newInstallmentTrx(t, f, ledger.DirectionOutbound)

		_, err := f.installments.Pay(ctx, ledger.DirectionOutbound, trx.ID, appledger.PayInstallmentsRequest{
			Payments: []appledger.PaymentInput{{ID: trx.Installments[0].ID, AmountPaid: dec(-5)}},
		})
		assert.ErrorIs(t, err, ledger.ErrInvalidPayment)
	})

	t.Run("requires payments or dates", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.installments.Pay(ctx, ledger.DirectionOutbound, uuid.New(), appledger.PayInstallmentsRequest{})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestInstallmentService_List(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	created, err := f.posting.Create(ctx, ledger.DirectionInbound,
		installment(3, []string{"2024-08-01", "2024-06-01", "2024-07-01"}, appledger.DetailInput{QuantityYard: dec(1), UnitPrice: dec(90)}), nil)
	require.NoError(t, err)

	list, err := f.installments.List(ctx, ledger.DirectionInbound, created.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-06-01", list[0].DueDate)
	assert.Equal(t, "2024-07-01", list[1].DueDate)
	assert.Equal(t, "2024-08-01", list[2].DueDate)
	for _, inst := range list {
		assert.Equal(t, created.ID, inst.TransactionID)
	}

	_, err = f.installments.List(ctx, ledger.DirectionOutbound, created.ID)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}
