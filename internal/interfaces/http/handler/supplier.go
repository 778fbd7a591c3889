package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// SupplierHandler serves product suppliers
type SupplierHandler struct {
	BaseHandler
	suppliers *partner.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(base BaseHandler, suppliers *partner.SupplierService) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, suppliers: suppliers}
}

type supplierQuery struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Address   string `form:"address"`
	Phone     string `form:"phone"`
}

// List godoc
//
//	@Summary	List suppliers
//	@Tags		suppliers
//	@Produce	json
//	@Param		skip		query		int		false	"Rows to skip"
//	@Param		take		query		int		false	"Rows to return (default 10)"
//	@Param		firstName	query		string	false	"First name contains"
//	@Param		lastName	query		string	false	"Last name contains"
//	@Param		address		query		string	false	"Address contains"
//	@Param		phone		query		string	false	"Phone contains"
//	@Success	200			{object}	shared.Page[partner.SupplierResponse]
//	@Router		/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	page, ok := h.skipTake(c)
	if !ok {
		return
	}
	var q supplierQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.suppliers.List(c.Request.Context(), middleware.CompanyID(c), partner.SupplierFilter(q), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get godoc
//
//	@Summary	Get a supplier
//	@Tags		suppliers
//	@Produce	json
//	@Param		id	path		string	true	"Supplier ID"
//	@Success	200	{object}	partner.SupplierResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "supplier")
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, supplier)
}

// Create godoc
//
//	@Summary	Create a supplier
//	@Tags		suppliers
//	@Accept		json
//	@Produce	json
//	@Param		request	body		partner.SupplierRequest	true	"Supplier"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partner.SupplierRequest
	if !h.bind(c, &req) {
		return
	}
	supplier, err := h.suppliers.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Supplier", supplier.ID)
}

// Update godoc
//
//	@Summary	Update a supplier
//	@Tags		suppliers
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Supplier ID"
//	@Param		request	body		partner.SupplierRequest	true	"Non-empty fields are applied"
//	@Success	200		{object}	partner.SupplierResponse
//	@Router		/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "supplier")
	if !ok {
		return
	}
	var req partner.SupplierRequest
	if !h.bind(c, &req) {
		return
	}
	supplier, err := h.suppliers.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, supplier)
}

// Delete godoc
//
//	@Summary	Delete a supplier
//	@Tags		suppliers
//	@Produce	json
//	@Param		id	path		string	true	"Supplier ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "supplier")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Supplier", id)
}
