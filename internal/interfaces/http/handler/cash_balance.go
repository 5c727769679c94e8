package handler

import (
	"github.com/gin-gonic/gin"

	appfinance "github.com/tekstil/ledger/internal/application/finance"
)

// CashBalanceHandler reads and sets the shop's cash balance
type CashBalanceHandler struct {
	BaseHandler
	balance *appfinance.CashBalanceService
}

// NewCashBalanceHandler creates a new CashBalanceHandler
func NewCashBalanceHandler(balance *appfinance.CashBalanceService) *CashBalanceHandler {
	return &CashBalanceHandler{balance: balance}
}

// Get godoc
// @ID           getCashBalance
// @Summary      Get the cash balance
// @Tags         cash-balance
// @Produce      json
// @Success      200 {object} APIResponse[appfinance.CashBalanceResponse]
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-balance [get]
func (h *CashBalanceHandler) Get(c *gin.Context) {
	balance, err := h.balance.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// Set godoc
// @ID           setCashBalance
// @Summary      Set the cash balance
// @Description  Sets an absolute amount, such as the opening balance. The change is journaled as a correction.
// @Tags         cash-balance
// @Accept       json
// @Produce      json
// @Param        request body appfinance.SetCashBalanceRequest true "Balance"
// @Success      200 {object} APIResponse[appfinance.CashBalanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-balance [put]
func (h *CashBalanceHandler) Set(c *gin.Context) {
	var req appfinance.SetCashBalanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	balance, err := h.balance.Set(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}
