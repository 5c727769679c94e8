package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashBalance(t *testing.T) {
	b := NewCashBalance()
	assert.Equal(t, CashBalanceID, b.ID)

	b.Apply(decimal.NewFromInt(1500))
	b.Apply(decimal.NewFromInt(-200))
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(1300)))
	assert.True(t, b.Covers(decimal.NewFromInt(1300)))
	assert.False(t, b.Covers(decimal.NewFromInt(1301)))

	delta := b.Set(decimal.NewFromInt(1000))
	assert.True(t, delta.Equal(decimal.NewFromInt(-300)))
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(1000)))
}

func TestNewExpense(t *testing.T) {
	t.Run("creates expense", func(t *testing.T) {
		date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		e, err := NewExpense(" Listrik ", decimal.NewFromInt(250), date, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "Listrik", e.Category)
		assert.Equal(t, date, e.ExpenseDate)
	})

	t.Run("defaults the date", func(t *testing.T) {
		e, err := NewExpense("Gaji", decimal.NewFromInt(1), time.Time{}, "", nil)
		require.NoError(t, err)
		assert.False(t, e.ExpenseDate.IsZero())
	})

	t.Run("fails with zero amount", func(t *testing.T) {
		_, err := NewExpense("Gaji", decimal.Zero, time.Now(), "", nil)
		assert.ErrorIs(t, err, ErrExpenseAmountInvalid)
	})

	t.Run("fails without category", func(t *testing.T) {
		_, err := NewExpense("", decimal.NewFromInt(5), time.Now(), "", nil)
		assert.ErrorIs(t, err, ErrExpenseCategoryRequired)
	})
}
