package finance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appfinance "github.com/tekstil/ledger/internal/application/finance"
	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/config"
	"github.com/tekstil/ledger/internal/infrastructure/persistence"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
)

type financeFixture struct {
	db       *gorm.DB
	cash     *persistence.GormCashBalanceRepository
	expenses *appfinance.ExpenseService
	balance  *appfinance.CashBalanceService
}

func newFinanceFixture(t *testing.T) *financeFixture {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.DB.AutoMigrate(models.All()...))

	db := database.DB
	scope := persistence.NewGormFinanceScope(db)
	cash := persistence.NewGormCashBalanceRepository(db)
	return &financeFixture{
		db:       db,
		cash:     cash,
		expenses: appfinance.NewExpenseService(persistence.NewGormExpenseRepository(db), scope),
		balance:  appfinance.NewCashBalanceService(cash, scope),
	}
}

func (f *financeFixture) setCash(t *testing.T, amount int64) {
	t.Helper()
	_, err := f.balance.Set(context.Background(), appfinance.SetCashBalanceRequest{Amount: decimal.NewFromInt(amount)})
	require.NoError(t, err)
}

func (f *financeFixture) cashAmount(t *testing.T) decimal.Decimal {
	t.Helper()
	balance, err := f.cash.Get(context.Background())
	if errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero
	}
	require.NoError(t, err)
	return balance.Amount
}

func (f *financeFixture) movements(t *testing.T, where string, args ...any) []ledger.Movement {
	t.Helper()
	var rows []models.MovementModel
	require.NoError(t, f.db.Where(where, args...).Order("created_at").Find(&rows).Error)
	out := make([]ledger.Movement, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, label string) {
	t.Helper()
	assert.Truef(t, got.Equal(decimal.NewFromInt(want)), "%s: want %d, got %s", label, want, got.String())
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the balance and journals the expense", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 1000)
		user := uuid.New()

		resp, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{
			Category:    "Listrik",
			Amount:      decimal.NewFromInt(300),
			ExpenseDate: "2024-05-02",
			Note:        "tagihan Mei",
			CreatedBy:   &user,
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-05-02", resp.ExpenseDate)
		assert.Equal(t, &user, resp.CreatedBy)
		assertDecimal(t, 700, f.cashAmount(t), "cash")

		list := f.movements(t, "expense_id = ?", resp.ID)
		require.Len(t, list, 1)
		assert.Equal(t, ledger.OperationExpense, list[0].Operation)
		assert.Equal(t, ledger.MovementCash, list[0].Kind)
		assertDecimal(t, -300, list[0].Amount, "movement")
		assert.Equal(t, "700", list[0].Meta["balance_after"])
	})

	t.Run("spends the balance exactly", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 300)

		_, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Sewa", Amount: decimal.NewFromInt(300)})
		require.NoError(t, err)
		assertDecimal(t, 0, f.cashAmount(t), "cash")
	})

	t.Run("refuses when the balance is short", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 100)

		_, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Sewa", Amount: decimal.NewFromInt(101)})
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assertDecimal(t, 100, f.cashAmount(t), "cash")

		var n int64
		require.NoError(t, f.db.Model(&models.ExpenseModel{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("refuses when no balance was ever set", func(t *testing.T) {
		f := newFinanceFixture(t)

		_, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Sewa", Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, finance.ErrCashBalanceMissing)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INSUFFICIENT_BALANCE", de.Code)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 100)

		_, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Sewa", Amount: decimal.Zero})
		assert.ErrorIs(t, err, finance.ErrExpenseAmountInvalid)
		_, err = f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Sewa", Amount: decimal.NewFromInt(1), ExpenseDate: "02/05/2024"})
		assert.Error(t, err)
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*financeFixture, uuid.UUID) {
		f := newFinanceFixture(t)
		f.setCash(t, 1000)
		resp, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Ongkir", Amount: decimal.NewFromInt(400)})
		require.NoError(t, err)
		return f, resp.ID
	}

	t.Run("an increase debits the difference", func(t *testing.T) {
		f, id := setup(t)
		resp, err := f.expenses.Update(ctx, id, appfinance.UpdateExpenseRequest{Amount: amount(550)})
		require.NoError(t, err)
		assert.Equal(t, "Ongkir", resp.Category)
		assertDecimal(t, 450, f.cashAmount(t), "cash")
		assert.Len(t, f.movements(t, "expense_id = ?", id), 2)
	})

	t.Run("a decrease credits the difference", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.expenses.Update(ctx, id, appfinance.UpdateExpenseRequest{Amount: amount(100)})
		require.NoError(t, err)
		assertDecimal(t, 900, f.cashAmount(t), "cash")
	})

	t.Run("an increase beyond the balance is refused", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.expenses.Update(ctx, id, appfinance.UpdateExpenseRequest{Amount: amount(1001)})
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assertDecimal(t, 600, f.cashAmount(t), "cash")

		stored, err := f.expenses.GetByID(ctx, id)
		require.NoError(t, err)
		assertDecimal(t, 400, stored.Amount, "amount")
	})

	t.Run("other fields leave cash alone", func(t *testing.T) {
		f, id := setup(t)
		note := "kurir"
		resp, err := f.expenses.Update(ctx, id, appfinance.UpdateExpenseRequest{Note: &note})
		require.NoError(t, err)
		assert.Equal(t, "kurir", resp.Note)
		assertDecimal(t, 600, f.cashAmount(t), "cash")
		assert.Len(t, f.movements(t, "expense_id = ?", id), 1)
	})

	t.Run("missing expense", func(t *testing.T) {
		f, _ := setup(t)
		_, err := f.expenses.Update(ctx, uuid.New(), appfinance.UpdateExpenseRequest{})
		assert.ErrorIs(t, err, finance.ErrExpenseNotFound)
	})
}

func TestExpenseService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFinanceFixture(t)
	f.setCash(t, 500)

	resp, err := f.expenses.Create(ctx, appfinance.CreateExpenseRequest{Category: "Makan", Amount: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assertDecimal(t, 380, f.cashAmount(t), "cash")

	require.NoError(t, f.expenses.Delete(ctx, resp.ID))
	assertDecimal(t, 500, f.cashAmount(t), "cash")

	_, err = f.expenses.GetByID(ctx, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	list := f.movements(t, "expense_id = ?", resp.ID)
	require.Len(t, list, 2)
	sum := list[0].Amount.Add(list[1].Amount)
	assert.True(t, sum.IsZero())

	assert.ErrorIs(t, f.expenses.Delete(ctx, resp.ID), shared.ErrNotFound)
}

func TestExpenseService_List(t *testing.T) {
	ctx := context.Background()
	f := newFinanceFixture(t)
	f.setCash(t, 10000)

	for _, req := range []appfinance.CreateExpenseRequest{
		{Category: "Listrik", Amount: decimal.NewFromInt(200), ExpenseDate: "2024-01-15"},
		{Category: "Air", Amount: decimal.NewFromInt(50), ExpenseDate: "2024-02-15"},
		{Category: "Listrik", Amount: decimal.NewFromInt(250), ExpenseDate: "2024-02-20"},
	} {
		_, err := f.expenses.Create(ctx, req)
		require.NoError(t, err)
	}

	t.Run("totals every match", func(t *testing.T) {
		page, err := f.expenses.List(ctx, appfinance.ExpenseListFilter{PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Items, 1)
		assertDecimal(t, 500, page.TotalAmount, "total amount")
	})

	t.Run("filters by category and date", func(t *testing.T) {
		page, err := f.expenses.List(ctx, appfinance.ExpenseListFilter{Search: "listrik", DateFrom: "2024-02-01"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "2024-02-20", page.Items[0].ExpenseDate)
		assertDecimal(t, 250, page.TotalAmount, "total amount")
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		_, err := f.expenses.List(ctx, appfinance.ExpenseListFilter{DateTo: "yesterday"})
		assert.Error(t, err)
	})
}

func TestCashBalanceService(t *testing.T) {
	ctx := context.Background()

	t.Run("reads zero before anything is set", func(t *testing.T) {
		f := newFinanceFixture(t)
		resp, err := f.balance.Get(ctx)
		require.NoError(t, err)
		assert.True(t, resp.Amount.IsZero())
		assert.Nil(t, resp.UpdatedAt)
	})

	t.Run("set journals the change as a correction", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 800)

		resp, err := f.balance.Set(ctx, appfinance.SetCashBalanceRequest{Amount: decimal.NewFromInt(650), Note: "hitung kas"})
		require.NoError(t, err)
		assertDecimal(t, 650, resp.Amount, "amount")

		current, err := f.balance.CurrentBalance(ctx)
		require.NoError(t, err)
		assertDecimal(t, 650, current, "current")

		list := f.movements(t, "operation = ? AND meta IS NOT NULL", ledger.OperationCorrection)
		require.Len(t, list, 2)
		var noted []ledger.Movement
		for _, m := range list {
			if m.Meta["note"] != nil {
				noted = append(noted, m)
			}
		}
		require.Len(t, noted, 1)
		assertDecimal(t, -150, noted[0].Amount, "correction")
		assert.Equal(t, "hitung kas", noted[0].Meta["note"])
		assert.Equal(t, "650", noted[0].Meta["balance_after"])
	})

	t.Run("setting the same amount writes nothing", func(t *testing.T) {
		f := newFinanceFixture(t)
		f.setCash(t, 100)
		f.setCash(t, 100)
		assert.Len(t, f.movements(t, "operation = ?", ledger.OperationCorrection), 1)
	})
}
