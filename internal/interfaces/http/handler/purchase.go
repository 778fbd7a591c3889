package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/trade"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// PurchaseHandler serves stock purchases from suppliers
type PurchaseHandler struct {
	BaseHandler
	purchases *trade.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(base BaseHandler, purchases *trade.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, purchases: purchases}
}

// List godoc
//
//	@Summary	List purchases
//	@Tags		purchases
//	@Produce	json
//	@Param		skip		query		int		false	"Rows to skip"
//	@Param		take		query		int		false	"Rows to return (default 10)"
//	@Param		status		query		string	false	"PENDING, PAID, SHIPPED, COMPLETED or CANCELLED"
//	@Param		supplierId	query		string	false	"Supplier ID"
//	@Param		dueDate		query		string	false	"YYYY-MM-DD"
//	@Success	200			{object}	shared.Page[trade.PurchaseResponse]
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	page, ok := h.skipTake(c)
	if !ok {
		return
	}
	filter := trade.PurchaseListFilter{Status: c.Query("status")}
	if filter.SupplierID, ok = h.optionalUUID(c, "supplierId", "supplier"); !ok {
		return
	}
	if raw := c.Query("dueDate"); raw != "" {
		due, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.HandleError(c, shared.NewValidationError("Invalid dueDate: "+raw))
			return
		}
		filter.DueDate = &due
	}

	result, err := h.purchases.List(c.Request.Context(), middleware.CompanyID(c), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get godoc
//
//	@Summary	Get a purchase
//	@Tags		purchases
//	@Produce	json
//	@Param		id	path		string	true	"Purchase ID"
//	@Success	200	{object}	trade.PurchaseResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "purchase")
	if !ok {
		return
	}
	purchase, err := h.purchases.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, purchase)
}

// Create godoc
//
//	@Summary	Create a purchase
//	@Tags		purchases
//	@Accept		json
//	@Produce	json
//	@Param		request	body		trade.CreatePurchaseRequest	true	"Purchase"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req trade.CreatePurchaseRequest
	if !h.bind(c, &req) {
		return
	}
	purchase, err := h.purchases.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Purchase", purchase.ID)
}

// Update godoc
//
//	@Summary		Update a purchase
//	@Description	Sending details replaces every line
//	@Tags			purchases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Purchase ID"
//	@Param			request	body		trade.UpdatePurchaseRequest	true	"Changes"
//	@Success		200		{object}	trade.PurchaseResponse
//	@Router			/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "purchase")
	if !ok {
		return
	}
	var req trade.UpdatePurchaseRequest
	if !h.bind(c, &req) {
		return
	}
	purchase, err := h.purchases.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, purchase)
}

// Delete godoc
//
//	@Summary	Delete a purchase
//	@Tags		purchases
//	@Produce	json
//	@Param		id	path		string	true	"Purchase ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "purchase")
	if !ok {
		return
	}
	if err := h.purchases.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Purchase", id)
}
