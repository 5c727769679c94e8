package handler

import (
	"github.com/gin-gonic/gin"

	apppartner "github.com/tekstil/ledger/internal/application/partner"
	"github.com/tekstil/ledger/internal/domain/partner"
)

// PartyHandler serves either customers or suppliers; the router mounts one
// instance per kind
type PartyHandler struct {
	BaseHandler
	parties *apppartner.PartyService
	kind    partner.Kind
}

// NewCustomerHandler creates the handler mounted at /customers
func NewCustomerHandler(parties *apppartner.PartyService) *PartyHandler {
	return &PartyHandler{parties: parties, kind: partner.KindCustomer}
}

// NewSupplierHandler creates the handler mounted at /suppliers
func NewSupplierHandler(parties *apppartner.PartyService) *PartyHandler {
	return &PartyHandler{parties: parties, kind: partner.KindSupplier}
}

func (h *PartyHandler) label() string {
	return string(h.kind)
}

// Create godoc
// @ID           createParty
// @Summary      Create a customer or supplier
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        request body apppartner.CreatePartyRequest true "Party"
// @Success      201 {object} APIResponse[apppartner.PartyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [post]
// @Router       /suppliers [post]
func (h *PartyHandler) Create(c *gin.Context) {
	var req apppartner.CreatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	party, err := h.parties.Create(c.Request.Context(), h.kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, party)
}

// GetByID godoc
// @ID           getPartyById
// @Summary      Get a customer or supplier
// @Tags         parties
// @Produce      json
// @Param        id path string true "Party ID" format(uuid)
// @Success      200 {object} APIResponse[apppartner.PartyResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [get]
// @Router       /suppliers/{id} [get]
func (h *PartyHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", h.label())
	if !ok {
		return
	}

	party, err := h.parties.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// List godoc
// @ID           listParties
// @Summary      List customers or suppliers
// @Tags         parties
// @Produce      json
// @Param        search    query string false "Matches name or phone"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(10)
// @Success      200 {object} APIResponse[[]apppartner.PartyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [get]
// @Router       /suppliers [get]
func (h *PartyHandler) List(c *gin.Context) {
	var filter apppartner.PartyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.parties.List(c.Request.Context(), h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Update godoc
// @ID           updateParty
// @Summary      Update a customer or supplier
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        id path string true "Party ID" format(uuid)
// @Param        request body apppartner.UpdatePartyRequest true "Changes"
// @Success      200 {object} APIResponse[apppartner.PartyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [put]
// @Router       /suppliers/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", h.label())
	if !ok {
		return
	}
	var req apppartner.UpdatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	party, err := h.parties.Update(c.Request.Context(), h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// Delete godoc
// @ID           deleteParty
// @Summary      Delete a customer or supplier with no transactions
// @Tags         parties
// @Param        id path string true "Party ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
// @Router       /suppliers/{id} [delete]
func (h *PartyHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", h.label())
	if !ok {
		return
	}

	if err := h.parties.Delete(c.Request.Context(), h.kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
