package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tekstil/ledger/internal/application/receipt"
	"github.com/tekstil/ledger/internal/infrastructure/printing"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
)

// ReceiptHandler serves printable receipts
type ReceiptHandler struct {
	BaseHandler
	receipts *receipt.Service
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receipts *receipt.Service) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// Get godoc
// @ID           getTransactionReceipt
// @Summary      Render a receipt
// @Description  HTML for browser printing, or PDF when enabled. An archived PDF's download link is returned in X-Receipt-URL.
// @Tags         receipts
// @Produce      html
// @Produce      application/pdf
// @Param        direction path  string true  "outbound or inbound" Enums(outbound, inbound)
// @Param        id        path  string true  "Transaction ID" format(uuid)
// @Param        format    query string false "Output format" Enums(html, pdf) default(html)
// @Param        paper     query string false "Paper size" Enums(thermal, a5) default(thermal)
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transaction/{direction}/{id}/receipt [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	dir, ok := h.direction(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "transaction")
	if !ok {
		return
	}
	paper, ok := printing.ParsePaperSize(c.Query("paper"))
	if !ok {
		h.BadRequest(c, "paper must be thermal or a5")
		return
	}

	switch format := c.DefaultQuery("format", "html"); format {
	case "html":
		html, err := h.receipts.HTML(c.Request.Context(), dir, id, paper)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	case "pdf":
		doc, err := h.receipts.PDF(c.Request.Context(), dir, id, paper)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if doc.URL != "" {
			c.Header(middleware.ReceiptURLHeader, doc.URL)
		}
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
		c.Data(http.StatusOK, "application/pdf", doc.Data)
	default:
		h.BadRequest(c, "format must be html or pdf")
	}
}
