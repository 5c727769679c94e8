package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/tekstil/ledger/internal/application/catalog"
	appfinance "github.com/tekstil/ledger/internal/application/finance"
	appledger "github.com/tekstil/ledger/internal/application/ledger"
	apppartner "github.com/tekstil/ledger/internal/application/partner"
	"github.com/tekstil/ledger/internal/application/receipt"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/infrastructure/config"
	"github.com/tekstil/ledger/internal/infrastructure/persistence"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"github.com/tekstil/ledger/internal/infrastructure/printing"
	"github.com/tekstil/ledger/internal/interfaces/http/dto"
	"github.com/tekstil/ledger/internal/interfaces/http/handler"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
	"github.com/tekstil/ledger/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors dto.Response with raw data for per-test decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type apiFixture struct {
	engine *gin.Engine
}

// newAPIFixture wires real services over an in-memory sqlite database
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.DB.AutoMigrate(models.All()...))

	db := database.DB
	items := persistence.NewGormItemRepository(db)
	parties := persistence.NewGormPartyRepository(db)
	transactions := persistence.NewGormTradeTransactionRepository(db)
	movements := persistence.NewGormMovementRepository(db)
	cash := persistence.NewGormCashBalanceRepository(db)
	ledgerScope := persistence.NewGormLedgerScope(db)
	financeScope := persistence.NewGormFinanceScope(db)

	query := appledger.NewQueryService(transactions, movements, items, parties)
	partyService := apppartner.NewPartyService(parties, transactions)

	templates, err := printing.NewTemplateEngine("id")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	h := router.Handlers{
		Transactions: handler.NewTransactionHandler(
			appledger.NewPostingService(ledgerScope),
			appledger.NewReturnService(ledgerScope),
			query,
		),
		Installments: handler.NewInstallmentHandler(appledger.NewInstallmentService(ledgerScope, transactions)),
		Items: handler.NewItemHandler(
			appcatalog.NewItemService(items, transactions, persistence.NewGormCatalogScope(db)),
			query,
		),
		Customers:   handler.NewCustomerHandler(partyService),
		Suppliers:   handler.NewSupplierHandler(partyService),
		Expenses:    handler.NewExpenseHandler(appfinance.NewExpenseService(persistence.NewGormExpenseRepository(db), financeScope)),
		CashBalance: handler.NewCashBalanceHandler(appfinance.NewCashBalanceService(cash, financeScope)),
		Receipts:    handler.NewReceiptHandler(receipt.NewService(query, templates, receipt.WithStoreName("Toko Uji"))),
		System:      handler.NewSystemHandler("textile-ledger", "test", sqlDB),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.NoRoute(h.System.NotFound)
	r := router.NewRouter(engine)
	for _, group := range router.LedgerRoutes(h, func(c *gin.Context) { c.Next() }) {
		r.Register(group)
	}
	r.Setup()

	return &apiFixture{engine: engine}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (f *apiFixture) createItem(t *testing.T, code string, yard int64) uuid.UUID {
	t.Helper()
	w, env := f.do(t, http.MethodPost, "/items", appcatalog.CreateItemRequest{Code: code, Name: "Kain " + code})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[appcatalog.ItemResponse](t, env.Data)

	if yard > 0 {
		w, _ = f.do(t, http.MethodPut, "/items/"+item.ID.String()+"/stock", appcatalog.CorrectStockRequest{
			StockYard: decimal.NewFromInt(yard),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	return item.ID
}

func saleRequest(itemID uuid.UUID, yard, price int64) appledger.CreateTransactionRequest {
	return appledger.CreateTransactionRequest{
		HeaderInput: appledger.HeaderInput{
			TransactionDate: "2024-05-01",
			PaymentStatus:   "immediate",
		},
		Details: []appledger.DetailInput{{
			ItemID:       &itemID,
			QuantityYard: decimal.NewFromInt(yard),
			UnitPrice:    decimal.NewFromInt(price),
		}},
	}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "%s: want %d, got %s", msg, want, got)
}

func TestTransactionAPI_Lifecycle(t *testing.T) {
	f := newAPIFixture(t)
	itemID := f.createItem(t, "KT-01", 50)

	w, env := f.do(t, http.MethodPost, "/transaction/outbound", saleRequest(itemID, 10, 1500))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	posted := decode[appledger.PostingResult](t, env.Data)
	assertDecimal(t, 15000, posted.Total, "total")
	base := "/transaction/outbound/" + posted.ID.String()

	t.Run("get returns the details", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code)
		trx := decode[appledger.TransactionResponse](t, env.Data)
		assert.Equal(t, "outbound", trx.Direction)
		require.Len(t, trx.Details, 1)
		assert.Equal(t, "Kain KT-01", trx.Details[0].ItemName)
	})

	t.Run("the other direction does not see it", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/transaction/inbound/"+posted.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.NotEmpty(t, env.Error.Code)
	})

	t.Run("list carries pagination meta", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/transaction/outbound?page=1&page_size=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)
		assert.Equal(t, 5, env.Meta.PageSize)
	})

	t.Run("stock history lists the line", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/items/"+itemID.String()+"/history/outbound", nil)
		require.Equal(t, http.StatusOK, w.Code)
		history := decode[[]json.RawMessage](t, env.Data)
		assert.Len(t, history, 1)
	})

	t.Run("return then movements", func(t *testing.T) {
		_, env := f.do(t, http.MethodGet, base, nil)
		detailID := decode[appledger.TransactionResponse](t, env.Data).Details[0].ID

		w, env := f.do(t, http.MethodPost, base+"/return", appledger.CreateReturnRequest{
			Details: []appledger.ReturnInput{{DetailID: detailID, ReturnYard: decimal.NewFromInt(2)}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[appledger.ReturnResult](t, env.Data)
		assert.Equal(t, 1, result.DetailsProcessed)
		assertDecimal(t, 12000, result.Total, "total after return")

		w, env = f.do(t, http.MethodGet, base+"/movements", nil)
		require.Equal(t, http.StatusOK, w.Code)
		movements := decode[[]appledger.MovementResponse](t, env.Data)
		assert.Len(t, movements, 4)
	})

	t.Run("returning more than sold is rejected", func(t *testing.T) {
		_, env := f.do(t, http.MethodGet, base, nil)
		detailID := decode[appledger.TransactionResponse](t, env.Data).Details[0].ID

		w, env := f.do(t, http.MethodPost, base+"/return", appledger.CreateReturnRequest{
			Details: []appledger.ReturnInput{{DetailID: detailID, ReturnYard: decimal.NewFromInt(99)}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeReturnExceedsQuantity, env.Error.Code)
	})

	t.Run("delete reverses and removes", func(t *testing.T) {
		w, _ := f.do(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = f.do(t, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, env := f.do(t, http.MethodGet, "/items/"+itemID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assertDecimal(t, 50, decode[appcatalog.ItemResponse](t, env.Data).StockYard, "stock restored")
	})
}

func TestTransactionAPI_Update(t *testing.T) {
	f := newAPIFixture(t)
	itemID := f.createItem(t, "KT-02", 20)

	_, env := f.do(t, http.MethodPost, "/transaction/outbound", saleRequest(itemID, 4, 100))
	posted := decode[appledger.PostingResult](t, env.Data)

	w, env := f.do(t, http.MethodPut, "/transaction/outbound/"+posted.ID.String(), appledger.UpdateTransactionRequest{
		HeaderInput: appledger.HeaderInput{TransactionDate: "2024-05-02", PaymentStatus: "immediate"},
		Details: []appledger.RevisionInput{{
			ItemID:       &itemID,
			QuantityYard: decimal.NewFromInt(6),
			UnitPrice:    decimal.NewFromInt(100),
		}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertDecimal(t, 600, decode[appledger.PostingResult](t, env.Data).Total, "revised total")

	_, env = f.do(t, http.MethodGet, "/items/"+itemID.String(), nil)
	assertDecimal(t, 14, decode[appcatalog.ItemResponse](t, env.Data).StockYard, "stock after revision")
}

func TestTransactionAPI_Counterparty(t *testing.T) {
	f := newAPIFixture(t)
	itemID := f.createItem(t, "KT-30", 10)

	w, env := f.do(t, http.MethodPost, "/customers", apppartner.CreatePartyRequest{Name: "Toko Makmur"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := decode[apppartner.PartyResponse](t, env.Data).ID

	t.Run("customer on a purchase", func(t *testing.T) {
		req := saleRequest(itemID, 1, 100)
		req.CounterpartyID = &customer
		w, env := f.do(t, http.MethodPost, "/transaction/inbound", req)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})

	t.Run("unknown party", func(t *testing.T) {
		ghost := uuid.New()
		req := saleRequest(itemID, 1, 100)
		req.CounterpartyID = &ghost
		w, _ := f.do(t, http.MethodPost, "/transaction/outbound", req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("referenced customer cannot be deleted", func(t *testing.T) {
		req := saleRequest(itemID, 1, 100)
		req.CounterpartyID = &customer
		w, _ := f.do(t, http.MethodPost, "/transaction/outbound", req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, env := f.do(t, http.MethodDelete, "/customers/"+customer.String(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodePartyInUse, env.Error.Code)
	})
}

func TestTransactionAPI_RejectsBadInput(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode string
	}{
		{
			name:     "unknown direction",
			method:   http.MethodGet,
			path:     "/transaction/sideways",
			wantCode: dto.ErrCodeInvalidInput,
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/transaction/outbound/not-a-uuid",
			wantCode: dto.ErrCodeInvalidInput,
		},
		{
			name:   "no lines",
			method: http.MethodPost,
			path:   "/transaction/inbound",
			body: appledger.CreateTransactionRequest{
				HeaderInput: appledger.HeaderInput{TransactionDate: "2024-05-01", PaymentStatus: "immediate"},
			},
			wantCode: dto.ErrCodeEmptyDetails,
		},
		{
			name:     "missing date fails binding",
			method:   http.MethodPost,
			path:     "/transaction/inbound",
			body:     map[string]any{"details": []any{}},
			wantCode: dto.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotEmpty(t, env.Error.RequestID)
		})
	}
}

func TestInstallmentAPI(t *testing.T) {
	f := newAPIFixture(t)
	itemID := f.createItem(t, "KT-03", 0)

	req := saleRequest(itemID, 10, 100)
	req.PaymentStatus = "installment"
	req.Tenor = 2
	req.TenorDates = []string{"2024-06-01", "2024-07-01"}
	w, env := f.do(t, http.MethodPost, "/transaction/outbound", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[appledger.PostingResult](t, env.Data).ID

	w, env = f.do(t, http.MethodGet, "/installments/outbound/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	schedule := decode[[]appledger.InstallmentResponse](t, env.Data)
	require.Len(t, schedule, 2)
	assert.Equal(t, "2024-06-01", schedule[0].DueDate)

	w, env = f.do(t, http.MethodPut, "/installments/outbound/"+id.String(), appledger.PayInstallmentsRequest{
		Payments: []appledger.PaymentInput{{ID: schedule[0].ID, AmountPaid: decimal.NewFromInt(500)}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = f.do(t, http.MethodGet, "/installments/outbound/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	schedule = decode[[]appledger.InstallmentResponse](t, env.Data)
	assertDecimal(t, 500, schedule[0].AmountPaid, "paid amount")
}

func TestItemAPI(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createItem(t, "KT-10", 0)

	t.Run("duplicate code conflicts", func(t *testing.T) {
		w, env := f.do(t, http.MethodPost, "/items", appcatalog.CreateItemRequest{Code: "KT-10", Name: "Lain"})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
	})

	t.Run("update renames", func(t *testing.T) {
		name := "Katun Jepang"
		w, env := f.do(t, http.MethodPut, "/items/"+id.String(), appcatalog.UpdateItemRequest{Name: &name})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, name, decode[appcatalog.ItemResponse](t, env.Data).Name)
	})

	t.Run("search lists matches", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/items?search=jepang", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), env.Meta.Total)
	})

	t.Run("stock correction", func(t *testing.T) {
		w, env := f.do(t, http.MethodPut, "/items/"+id.String()+"/stock", appcatalog.CorrectStockRequest{
			StockYard: decimal.NewFromInt(30),
			StockRoll: decimal.NewFromInt(2),
			Note:      "stock opname",
		})
		require.Equal(t, http.StatusOK, w.Code)
		item := decode[appcatalog.ItemResponse](t, env.Data)
		assertDecimal(t, 30, item.StockYard, "yard")
		assertDecimal(t, 2, item.StockRoll, "roll")
	})

	t.Run("item used by a transaction cannot be deleted", func(t *testing.T) {
		w, _ := f.do(t, http.MethodPost, "/transaction/outbound", saleRequest(id, 1, 10))
		require.Equal(t, http.StatusCreated, w.Code)

		w, env := f.do(t, http.MethodDelete, "/items/"+id.String(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeItemInUse, env.Error.Code)
	})

	t.Run("unused item is deleted", func(t *testing.T) {
		other := f.createItem(t, "KT-11", 0)
		w, _ := f.do(t, http.MethodDelete, "/items/"+other.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestPartyAPI(t *testing.T) {
	f := newAPIFixture(t)

	w, env := f.do(t, http.MethodPost, "/customers", apppartner.CreatePartyRequest{Name: "Toko Makmur", Phone: "0812"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := decode[apppartner.PartyResponse](t, env.Data)
	assert.Equal(t, string(partner.KindCustomer), customer.Kind)

	t.Run("a customer is not a supplier", func(t *testing.T) {
		w, _ := f.do(t, http.MethodGet, "/suppliers/"+customer.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists by kind", func(t *testing.T) {
		_, _ = f.do(t, http.MethodPost, "/suppliers", apppartner.CreatePartyRequest{Name: "CV Benang"})

		w, env := f.do(t, http.MethodGet, "/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), env.Meta.Total)
	})

	t.Run("update and delete", func(t *testing.T) {
		phone := "0899"
		w, env := f.do(t, http.MethodPut, "/customers/"+customer.ID.String(), apppartner.UpdatePartyRequest{Phone: &phone})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, phone, decode[apppartner.PartyResponse](t, env.Data).Phone)

		w, _ = f.do(t, http.MethodDelete, "/customers/"+customer.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestFinanceAPI(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("expense without a cash balance is refused", func(t *testing.T) {
		w, env := f.do(t, http.MethodPost, "/expenses", appfinance.CreateExpenseRequest{
			Category: "listrik", Amount: decimal.NewFromInt(100), ExpenseDate: "2024-05-01",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInsufficientBalance, env.Error.Code)
	})

	w, env := f.do(t, http.MethodPut, "/cash-balance", appfinance.SetCashBalanceRequest{Amount: decimal.NewFromInt(1000)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertDecimal(t, 1000, decode[appfinance.CashBalanceResponse](t, env.Data).Amount, "balance set")

	w, env = f.do(t, http.MethodPost, "/expenses", appfinance.CreateExpenseRequest{
		Category: "listrik", Amount: decimal.NewFromInt(300), ExpenseDate: "2024-05-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	expense := decode[appfinance.ExpenseResponse](t, env.Data)

	t.Run("list reports the total amount", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/expenses", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode[handler.ExpenseListData](t, env.Data)
		require.Len(t, data.Items, 1)
		assertDecimal(t, 300, data.TotalAmount, "total amount")
		assert.Equal(t, int64(1), env.Meta.Total)
	})

	t.Run("balance reflects the expense", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, "/cash-balance", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assertDecimal(t, 700, decode[appfinance.CashBalanceResponse](t, env.Data).Amount, "balance")
	})

	t.Run("raising past the balance is refused", func(t *testing.T) {
		amount := decimal.NewFromInt(5000)
		w, env := f.do(t, http.MethodPut, "/expenses/"+expense.ID.String(), appfinance.UpdateExpenseRequest{Amount: &amount})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInsufficientBalance, env.Error.Code)
	})

	t.Run("delete refunds", func(t *testing.T) {
		w, _ := f.do(t, http.MethodDelete, "/expenses/"+expense.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		_, env := f.do(t, http.MethodGet, "/cash-balance", nil)
		assertDecimal(t, 1000, decode[appfinance.CashBalanceResponse](t, env.Data).Amount, "balance")
	})
}

func TestReceiptAPI(t *testing.T) {
	f := newAPIFixture(t)
	itemID := f.createItem(t, "KT-20", 10)

	_, env := f.do(t, http.MethodPost, "/transaction/outbound", saleRequest(itemID, 2, 2500))
	base := "/transaction/outbound/" + decode[appledger.PostingResult](t, env.Data).ID.String() + "/receipt"

	t.Run("html by default", func(t *testing.T) {
		w, _ := f.do(t, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "TOKO UJI")
		assert.Contains(t, w.Body.String(), "Kain KT-20")
	})

	t.Run("a5 paper", func(t *testing.T) {
		w, _ := f.do(t, http.MethodGet, base+"?paper=a5", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown paper", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, base+"?paper=letter", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, env.Error.Code)
	})

	t.Run("unknown format", func(t *testing.T) {
		w, _ := f.do(t, http.MethodGet, base+"?format=docx", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pdf without a renderer is unavailable", func(t *testing.T) {
		w, env := f.do(t, http.MethodGet, base+"?format=pdf", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeReceiptUnavailable, env.Error.Code)
	})
}

func TestSystemAPI(t *testing.T) {
	f := newAPIFixture(t)

	w, env := f.do(t, http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[handler.SystemInfoResponse](t, env.Data)
	assert.Equal(t, "textile-ledger", info.Name)

	w, env = f.do(t, http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
}
