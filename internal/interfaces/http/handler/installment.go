package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
)

// InstallmentHandler handles installment schedule endpoints
type InstallmentHandler struct {
	BaseHandler
	installments *appledger.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installments *appledger.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installments: installments}
}

// List godoc
// @ID           listInstallments
// @Summary      List the installment schedule of a transaction
// @Tags         installments
// @Produce      json
// @Param        direction     path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        transactionId path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[[]appledger.InstallmentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /installments/{direction}/{transactionId} [get]
func (h *InstallmentHandler) List(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "transactionId", "transaction")
	if !ok {
		return
	}

	list, err := h.installments.List(c.Request.Context(), dir, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Pay godoc
// @ID           payInstallments
// @Summary      Record installment payments
// @Description  Sets paid amounts and moves cash by the difference. Unpaid entries may be re-dated positionally.
// @Tags         installments
// @Accept       json
// @Produce      json
// @Param        direction     path string true "outbound or inbound" Enums(outbound, inbound)
// @Param        transactionId path string true "Transaction ID" format(uuid)
// @Param        request body appledger.PayInstallmentsRequest true "Payments"
// @Success      200 {object} APIResponse[[]appledger.InstallmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /installments/{direction}/{transactionId} [put]
func (h *InstallmentHandler) Pay(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "transactionId", "transaction")
	if !ok {
		return
	}
	var req appledger.PayInstallmentsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	list, err := h.installments.Pay(c.Request.Context(), dir, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
