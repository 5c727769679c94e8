package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
)

func TestQueryService_List(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	customer := f.newParty(t, partner.KindCustomer, "Toko Makmur")
	a := f.newItem(t, "A", 0, 0)

	for i, date := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		req := immediate(line(a, int64(i+1), 0, 100))
		req.TransactionDate = date
		req.Note = "batch"
		if i == 2 {
			req.CounterpartyID = &customer
			req.Note = "grosir"
		}
		_, err := f.posting.Create(ctx, ledger.DirectionOutbound, req, nil)
		require.NoError(t, err)
	}
	_, err := f.posting.Create(ctx, ledger.DirectionInbound, immediate(line(a, 1, 0, 10)), nil)
	require.NoError(t, err)

	t.Run("lists one direction newest first", func(t *testing.T) {
		page, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 10, page.PageSize)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "2024-03-10", page.Items[0].TransactionDate)
		assert.Equal(t, "Toko Makmur", page.Items[0].CounterpartyName)
		assert.Equal(t, 1, page.Items[0].LineCount)
	})

	t.Run("filters by counterparty", func(t *testing.T) {
		page, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{CounterpartyID: &customer})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assertDecimal(t, 300, page.Items[0].Total, "total")
	})

	t.Run("filters by date range", func(t *testing.T) {
		page, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{
			DateFrom: "2024-02-01",
			DateTo:   "2024-02-28",
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "2024-02-10", page.Items[0].TransactionDate)
	})

	t.Run("searches the note", func(t *testing.T) {
		page, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{Search: "GROSIR"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "2024-01-10", page.Items[0].TransactionDate)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		_, err := f.query.List(ctx, ledger.DirectionOutbound, appledger.TransactionListFilter{DateFrom: "10-02-2024"})
		assert.Error(t, err)
	})
}

func TestQueryService_Get(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	supplier := f.newParty(t, partner.KindSupplier, "CV Benang")
	a := f.newItem(t, "A", 0, 0)

	req := installment(1, []string{"2024-04-01"}, line(a, 2, 1, 150))
	req.CounterpartyID = &supplier
	created, err := f.posting.Create(ctx, ledger.DirectionInbound, req, nil)
	require.NoError(t, err)

	resp, err := f.query.Get(ctx, ledger.DirectionInbound, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "inbound", resp.Direction)
	assert.Equal(t, "CV Benang", resp.CounterpartyName)
	assert.Equal(t, string(ledger.PaymentInstallment), resp.PaymentStatus)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Kain A", resp.Details[0].ItemName)
	assertDecimal(t, 300, resp.Details[0].LineAmount, "line amount")
	require.Len(t, resp.Installments, 1)
	assert.Equal(t, "2024-04-01", resp.Installments[0].DueDate)

	_, err = f.query.Get(ctx, ledger.DirectionOutbound, created.ID)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestQueryService_Movements(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	a := f.newItem(t, "A", 10, 0)

	created, err := f.posting.Create(ctx, ledger.DirectionOutbound, immediate(line(a, 4, 0, 100)), nil)
	require.NoError(t, err)
	detailID := f.load(t, ledger.DirectionOutbound, created.ID).Details[0].ID
	_, err = f.returns.CreateReturn(ctx, ledger.DirectionOutbound, created.ID, appledger.CreateReturnRequest{
		Details: []appledger.ReturnInput{{DetailID: detailID, ReturnYard: dec(1)}},
	})
	require.NoError(t, err)
	require.NoError(t, f.posting.Delete(ctx, ledger.DirectionOutbound, created.ID))

	list, err := f.query.Movements(ctx, created.ID)
	require.NoError(t, err)

	byOp := make(map[string][]appledger.MovementResponse)
	for _, m := range list {
		byOp[m.Operation] = append(byOp[m.Operation], m)
	}
	require.Len(t, byOp["post"], 2)
	require.Len(t, byOp["return"], 2)
	require.Len(t, byOp["reverse"], 2)

	var stockSum, cashSum = dec(0), dec(0)
	for _, m := range list {
		switch m.Kind {
		case string(ledger.MovementStock):
			assert.Equal(t, a, *m.ItemID)
			stockSum = stockSum.Add(m.QuantityYard)
		case string(ledger.MovementCash):
			assert.Contains(t, m.Meta, "balance_after")
			cashSum = cashSum.Add(m.Amount)
		}
	}
	assert.True(t, stockSum.IsZero(), "stock movements net to zero")
	assert.True(t, cashSum.IsZero(), "cash movements net to zero")
}

func TestQueryService_ItemHistory(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	a := f.newItem(t, "A", 0, 0)
	b := f.newItem(t, "B", 0, 0)

	_, err := f.posting.Create(ctx, ledger.DirectionOutbound, immediate(line(a, 3, 1, 100), line(b, 1, 0, 50)), nil)
	require.NoError(t, err)
	_, err = f.posting.Create(ctx, ledger.DirectionInbound, immediate(line(a, 9, 2, 80)), nil)
	require.NoError(t, err)

	history, err := f.query.ItemHistory(ctx, ledger.DirectionOutbound, a)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assertDecimal(t, 3, history[0].QuantityYard, "yard")
	assertDecimal(t, 300, history[0].LineAmount, "line amount")

	history, err = f.query.ItemHistory(ctx, ledger.DirectionInbound, b)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostingService_LogsRejections(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))
	f := newLedgerFixture(t)

	_, err := f.posting.Create(ctx, ledger.DirectionOutbound, immediate(), nil)
	require.Error(t, err)

	entries := logs.FilterMessage("Ledger request rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "EMPTY_DETAILS", entries[0].ContextMap()["code"])

	_, err = f.posting.Create(ctx, ledger.DirectionOutbound,
		immediate(appledger.DetailInput{ItemID: ptr(uuid.New()), QuantityYard: dec(1), UnitPrice: dec(1)}), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Transaction posted").Len())
}

func ptr[T any](v T) *T {
	return &v
}
