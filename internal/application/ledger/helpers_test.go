package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/config"
	"github.com/tekstil/ledger/internal/infrastructure/persistence"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
)

// ledgerFixture wires the ledger services to an in-memory SQLite store
type ledgerFixture struct {
	db           *gorm.DB
	items        *persistence.GormItemRepository
	parties      *persistence.GormPartyRepository
	cash         *persistence.GormCashBalanceRepository
	transactions *persistence.GormTradeTransactionRepository
	movements    *persistence.GormMovementRepository

	posting      *appledger.PostingService
	returns      *appledger.ReturnService
	installments *appledger.InstallmentService
	query        *appledger.QueryService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.DB.AutoMigrate(models.All()...))

	db := database.DB
	scope := persistence.NewGormLedgerScope(db)
	f := &ledgerFixture{
		db:           db,
		items:        persistence.NewGormItemRepository(db),
		parties:      persistence.NewGormPartyRepository(db),
		cash:         persistence.NewGormCashBalanceRepository(db),
		transactions: persistence.NewGormTradeTransactionRepository(db),
		movements:    persistence.NewGormMovementRepository(db),
		posting:      appledger.NewPostingService(scope),
		returns:      appledger.NewReturnService(scope),
	}
	f.installments = appledger.NewInstallmentService(scope, f.transactions)
	f.query = appledger.NewQueryService(f.transactions, f.movements, f.items, f.parties)
	return f
}

// newItem stores an item holding the given stock
func (f *ledgerFixture) newItem(t *testing.T, code string, yard, roll int64) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	item, err := catalog.NewItem(code, "Kain "+code)
	require.NoError(t, err)
	require.NoError(t, f.items.Create(ctx, item))
	ok, err := f.items.AdjustStock(ctx, item.ID, decimal.NewFromInt(yard), decimal.NewFromInt(roll))
	require.NoError(t, err)
	require.True(t, ok)
	return item.ID
}

func (f *ledgerFixture) newParty(t *testing.T, kind partner.Kind, name string) uuid.UUID {
	t.Helper()
	p, err := partner.NewParty(kind, name, "0812")
	require.NoError(t, err)
	require.NoError(t, f.parties.Create(context.Background(), p))
	return p.ID
}

// setCash seeds the singleton balance
func (f *ledgerFixture) setCash(t *testing.T, amount int64) {
	t.Helper()
	ctx := context.Background()
	balance, err := f.cash.LockOrCreate(ctx)
	require.NoError(t, err)
	balance.Set(decimal.NewFromInt(amount))
	require.NoError(t, f.cash.Save(ctx, balance))
}

func (f *ledgerFixture) cashAmount(t *testing.T) decimal.Decimal {
	t.Helper()
	balance, err := f.cash.Get(context.Background())
	if errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero
	}
	require.NoError(t, err)
	return balance.Amount
}

func (f *ledgerFixture) stock(t *testing.T, id uuid.UUID) ledger.Quantity {
	t.Helper()
	item, err := f.items.FindByID(context.Background(), id)
	require.NoError(t, err)
	return ledger.NewQuantity(item.StockYard, item.StockRoll)
}

func (f *ledgerFixture) load(t *testing.T, direction ledger.Direction, id uuid.UUID) *ledger.TradeTransaction {
	t.Helper()
	trx, err := f.transactions.FindByID(context.Background(), direction, id)
	require.NoError(t, err)
	return trx
}

func (f *ledgerFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, label string) {
	t.Helper()
	assert.Truef(t, got.Equal(decimal.NewFromInt(want)), "%s: want %d, got %s", label, want, got.String())
}

func assertStock(t *testing.T, f *ledgerFixture, id uuid.UUID, yard, roll int64) {
	t.Helper()
	q := f.stock(t, id)
	assertDecimal(t, yard, q.Yard, "yard")
	assertDecimal(t, roll, q.Roll, "roll")
}

func line(itemID uuid.UUID, yard, roll, price int64) appledger.DetailInput {
	return appledger.DetailInput{
		ItemID:       &itemID,
		QuantityYard: dec(yard),
		QuantityRoll: dec(roll),
		UnitPrice:    dec(price),
	}
}

func immediate(details ...appledger.DetailInput) appledger.CreateTransactionRequest {
	return appledger.CreateTransactionRequest{
		HeaderInput: appledger.HeaderInput{
			TransactionDate: "2024-05-01",
			PaymentStatus:   "immediate",
		},
		Details: details,
	}
}

func installment(tenor int, dates []string, details ...appledger.DetailInput) appledger.CreateTransactionRequest {
	req := immediate(details...)
	req.PaymentStatus = "installment"
	req.Tenor = tenor
	req.TenorDates = dates
	return req
}

// revisionOf rebuilds an update request from a stored transaction
func revisionOf(trx *ledger.TradeTransaction) appledger.UpdateTransactionRequest {
	req := appledger.UpdateTransactionRequest{
		HeaderInput: appledger.HeaderInput{
			TransactionDate: shared.FormatDate(trx.TransactionDate),
			CounterpartyID:  trx.CounterpartyID,
			PaymentStatus:   string(trx.PaymentStatus),
			DiscountType:    string(trx.Discount.Type),
			DiscountValue:   trx.Discount.Value,
			TaxType:         string(trx.Tax.Type),
			TaxValue:        trx.Tax.Value,
			Note:            trx.Note,
			Tenor:           len(trx.Installments),
		},
	}
	for _, d := range trx.Details {
		id := d.ID
		req.Details = append(req.Details, appledger.RevisionInput{
			DetailID:     &id,
			ItemID:       d.ItemID,
			QuantityYard: d.Quantity.Yard,
			QuantityRoll: d.Quantity.Roll,
			UnitPrice:    d.UnitPrice,
		})
	}
	return req
}
