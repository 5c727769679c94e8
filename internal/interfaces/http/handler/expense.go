package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appfinance "github.com/tekstil/ledger/internal/application/finance"
	"github.com/tekstil/ledger/internal/interfaces/http/dto"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
)

// ExpenseHandler handles operating expenses paid from the cash balance
type ExpenseHandler struct {
	BaseHandler
	expenses *appfinance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses *appfinance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// ExpenseListData is the data of an expense list response
type ExpenseListData struct {
	Items       []appfinance.ExpenseResponse `json:"items"`
	TotalAmount decimal.Decimal              `json:"total_amount"`
}

// Create godoc
// @ID           createExpense
// @Summary      Record an expense
// @Description  Debits the cash balance, which must cover the amount
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client key that makes retries safe"
// @Param        request body appfinance.CreateExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[appfinance.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req appfinance.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserUUID(c)

	expense, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetByID godoc
// @ID           getExpenseById
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[appfinance.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "expense")
	if !ok {
		return
	}

	expense, err := h.expenses.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// List godoc
// @ID           listExpenses
// @Summary      List expenses with the total of every match
// @Tags         expenses
// @Produce      json
// @Param        search    query string false "Matches category or note"
// @Param        date_from query string false "Inclusive, YYYY-MM-DD"
// @Param        date_to   query string false "Inclusive, YYYY-MM-DD"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(10)
// @Success      200 {object} APIResponse[ExpenseListData]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter appfinance.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := dto.NewPaginatedResponse(list.Paginated)
	resp.Data = ExpenseListData{
		Items:       list.Items,
		TotalAmount: list.TotalAmount,
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Description  An increased amount must be covered by the cash balance
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body appfinance.UpdateExpenseRequest true "Changes"
// @Success      200 {object} APIResponse[appfinance.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "expense")
	if !ok {
		return
	}
	var req appfinance.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenses.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete an expense and credit its amount back
// @Tags         expenses
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
