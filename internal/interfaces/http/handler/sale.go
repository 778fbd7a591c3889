package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/trade"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// SaleHandler serves customer orders
type SaleHandler struct {
	BaseHandler
	sales *trade.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(base BaseHandler, sales *trade.SaleService) *SaleHandler {
	return &SaleHandler{BaseHandler: base, sales: sales}
}

func caller(c *gin.Context) trade.Caller {
	user := middleware.CurrentUser(c)
	return trade.Caller{ID: user.ID, Admin: user.IsAdmin()}
}

// List godoc
//
//	@Summary	List sales
//	@Tags		sales
//	@Produce	json
//	@Param		skip		query		int		false	"Rows to skip"
//	@Param		take		query		int		false	"Rows to return (default 10)"
//	@Param		status		query		string	false	"Sale status"
//	@Param		customerId	query		string	false	"Customer ID"
//	@Param		totalCost	query		string	false	"Exact total"
//	@Success	200			{object}	shared.Page[trade.SaleResponse]
//	@Router		/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	page, ok := h.skipTake(c)
	if !ok {
		return
	}
	filter := trade.SaleListFilter{Status: c.Query("status")}
	if filter.CustomerID, ok = h.optionalUUID(c, "customerId", "customer"); !ok {
		return
	}
	if filter.TotalCost, ok = h.optionalDecimal(c, "totalCost"); !ok {
		return
	}

	result, err := h.sales.List(c.Request.Context(), middleware.CompanyID(c), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// History godoc
//
//	@Summary	The caller's own sales
//	@Tags		sales
//	@Produce	json
//	@Param		skip	query		int	false	"Rows to skip"
//	@Param		take	query		int	false	"Rows to return (default 10)"
//	@Success	200		{object}	shared.Page[trade.SaleResponse]
//	@Router		/sales/history [get]
func (h *SaleHandler) History(c *gin.Context) {
	page, ok := h.skipTake(c)
	if !ok {
		return
	}
	result, err := h.sales.History(c.Request.Context(), middleware.CompanyID(c), caller(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get godoc
//
//	@Summary		Get a sale
//	@Description	Allowed for admins and the customer who placed it
//	@Tags			sales
//	@Produce		json
//	@Param			id	path		string	true	"Sale ID"
//	@Success		200	{object}	trade.SaleResponse
//	@Failure		403	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Router			/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "sale")
	if !ok {
		return
	}
	sale, err := h.sales.Get(c.Request.Context(), middleware.CompanyID(c), id, caller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, sale)
}

// Create godoc
//
//	@Summary		Place a sale
//	@Description	Non-admin callers always buy for themselves and start PENDING
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trade.CreateSaleRequest	true	"Sale"
//	@Success		201		{object}	dto.MessageResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req trade.CreateSaleRequest
	if !h.bind(c, &req) {
		return
	}
	sale, err := h.sales.Create(c.Request.Context(), middleware.CompanyID(c), caller(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Sale", sale.ID)
}

// Update godoc
//
//	@Summary	Update a sale
//	@Tags		sales
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Sale ID"
//	@Param		request	body		trade.UpdateSaleRequest	true	"Changes"
//	@Success	200		{object}	trade.SaleResponse
//	@Router		/sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "sale")
	if !ok {
		return
	}
	var req trade.UpdateSaleRequest
	if !h.bind(c, &req) {
		return
	}
	sale, err := h.sales.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, sale)
}

// Delete godoc
//
//	@Summary	Delete a sale
//	@Tags		sales
//	@Produce	json
//	@Param		id	path		string	true	"Sale ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "sale")
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Sale", id)
}
