package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/tekstil/ledger/internal/application/catalog"
	appledger "github.com/tekstil/ledger/internal/application/ledger"
)

// ItemHandler handles item master data, stock correction and item history
type ItemHandler struct {
	BaseHandler
	items *appcatalog.ItemService
	query *appledger.QueryService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *appcatalog.ItemService, query *appledger.QueryService) *ItemHandler {
	return &ItemHandler{items: items, query: query}
}

// Create godoc
// @ID           createItem
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateItemRequest true "Item"
// @Success      201 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req appcatalog.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID godoc
// @ID           getItemById
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "item")
	if !ok {
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List godoc
// @ID           listItems
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        search    query string false "Matches code or name"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(10)
// @Success      200 {object} APIResponse[[]appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var filter appcatalog.ItemListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Update godoc
// @ID           updateItem
// @Summary      Update an item's code or name
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body appcatalog.UpdateItemRequest true "Changes"
// @Success      200 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "item")
	if !ok {
		return
	}
	var req appcatalog.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteItem
// @Summary      Delete an item no transaction line references
// @Tags         items
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "item")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CorrectStock godoc
// @ID           correctItemStock
// @Summary      Set on-hand stock after a physical count
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body appcatalog.CorrectStockRequest true "Counted stock"
// @Success      200 {object} APIResponse[appcatalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id}/stock [put]
func (h *ItemHandler) CorrectStock(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "item")
	if !ok {
		return
	}
	var req appcatalog.CorrectStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.items.CorrectStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// History godoc
// @ID           getItemHistory
// @Summary      Trade history of an item in one direction
// @Tags         items
// @Produce      json
// @Param        id        path string true "Item ID" format(uuid)
// @Param        direction path string true "outbound or inbound" Enums(outbound, inbound)
// @Success      200 {object} APIResponse[[]appledger.ItemHistoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id}/history/{direction} [get]
func (h *ItemHandler) History(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "item")
	if !ok {
		return
	}
	dir, ok := h.direction(c)
	if !ok {
		return
	}

	history, err := h.query.ItemHistory(c.Request.Context(), dir, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
