package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
)

// TransactionHandler handles sale and purchase endpoints. The direction path
// parameter selects outbound (sale) or inbound (purchase).
type TransactionHandler struct {
	BaseHandler
	posting *appledger.PostingService
	returns *appledger.ReturnService
	query   *appledger.QueryService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	posting *appledger.PostingService,
	returns *appledger.ReturnService,
	query *appledger.QueryService,
) *TransactionHandler {
	return &TransactionHandler{
		posting: posting,
		returns: returns,
		query:   query,
	}
}

// Create godoc
// @ID           createTransaction
// @Summary      Post a sale or purchase
// @Description  Validates lines, applies stock and cash effects, and builds the installment schedule in one unit
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        direction       path   string true  "outbound or inbound" Enums(outbound, inbound)
// @Param        Idempotency-Key header string false "Client key that makes retries safe"
// @Param        request body appledger.CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[appledger.PostingResult]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction} [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	var req appledger.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.posting.Create(c.Request.Context(), dir, req, middleware.GetUserUUID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update godoc
// @ID           updateTransaction
// @Summary      Replace a transaction
// @Description  Reverses the prior effects and applies the new ones. Returned quantities carry over to matched lines.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        direction path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        id        path string true "Transaction ID" format(uuid)
// @Param        request body appledger.UpdateTransactionRequest true "Transaction"
// @Success      200 {object} APIResponse[appledger.PostingResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}
	var req appledger.UpdateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.posting.Update(c.Request.Context(), dir, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteTransaction
// @Summary      Delete a transaction
// @Description  Reverses stock and cash effects. Fails when an installment has been paid.
// @Tags         transactions
// @Param        direction path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        id        path string true "Transaction ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}

	if err := h.posting.Delete(c.Request.Context(), dir, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateReturn godoc
// @ID           createTransactionReturn
// @Summary      Record returns
// @Description  Sets cumulative returned quantities per line and adjusts stock, total and cash
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        direction       path   string true  "outbound or inbound" Enums(outbound, inbound)
// @Param        id              path   string true  "Transaction ID" format(uuid)
// @Param        Idempotency-Key header string false "Client key that makes retries safe"
// @Param        request body appledger.CreateReturnRequest true "Returned quantities"
// @Success      201 {object} APIResponse[appledger.ReturnResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id}/return [post]
func (h *TransactionHandler) CreateReturn(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}
	var req appledger.CreateReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.returns.CreateReturn(c.Request.Context(), dir, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @ID           listTransactions
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Param        direction       path  string true  "outbound or inbound" Enums(outbound, inbound)
// @Param        search          query string false "Matches the note"
// @Param        counterparty_id query string false "Customer or supplier ID" format(uuid)
// @Param        date_from       query string false "Inclusive, YYYY-MM-DD"
// @Param        date_to         query string false "Inclusive, YYYY-MM-DD"
// @Param        page            query int    false "Page number" default(1)
// @Param        page_size       query int    false "Page size" default(10)
// @Success      200 {object} APIResponse[[]appledger.TransactionListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction} [get]
func (h *TransactionHandler) List(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	var filter appledger.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.query.List(c.Request.Context(), dir, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Get godoc
// @ID           getTransaction
// @Summary      Get a transaction with lines and installments
// @Tags         transactions
// @Produce      json
// @Param        direction path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        id        path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}

	trx, err := h.query.Get(c.Request.Context(), dir, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trx)
}

// Movements godoc
// @ID           listTransactionMovements
// @Summary      List the stock and cash movements of a transaction
// @Tags         transactions
// @Produce      json
// @Param        direction path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        id        path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[[]appledger.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id}/movements [get]
func (h *TransactionHandler) Movements(c *gin.Context) {
	if _, ok := h.direction(c); !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}

	// The journal outlives deleted transactions, so no existence check
	list, err := h.query.Movements(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
