package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/catalog"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// ProductHandler serves the storefront catalog
type ProductHandler struct {
	BaseHandler
	products *catalog.ProductService
	// storefront company for anonymous readers
	defaultCompany uuid.UUID
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(base BaseHandler, products *catalog.ProductService, defaultCompany uuid.UUID) *ProductHandler {
	return &ProductHandler{BaseHandler: base, products: products, defaultCompany: defaultCompany}
}

type productQuery struct {
	Name          string `form:"name"`
	IsOwnedByShop *bool  `form:"isOwnedByShop"`
}

func (h *ProductHandler) companyID(c *gin.Context) uuid.UUID {
	if middleware.CurrentUser(c) == nil {
		return h.defaultCompany
	}
	return middleware.CompanyID(c)
}

// List godoc
//
//	@Summary		List products
//	@Description	Admins also see supplier, ownership and purchase cost
//	@Tags			products
//	@Produce		json
//	@Param			skip			query		int		false	"Rows to skip"
//	@Param			take			query		int		false	"Rows to return (default 10)"
//	@Param			name			query		string	false	"Name contains"
//	@Param			price			query		string	false	"Exact price"
//	@Param			isOwnedByShop	query		bool	false	"Owned by the shop"
//	@Param			supplierId		query		string	false	"Supplier ID"
//	@Success		200				{object}	shared.Page[catalog.ProductResponse]
//	@Router			/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, ok := h.skipTake(c)
	if !ok {
		return
	}
	var q productQuery
	if !h.bindQuery(c, &q) {
		return
	}
	filter := catalog.ProductListFilter{Name: q.Name, IsOwnedByShop: q.IsOwnedByShop}
	if filter.Price, ok = h.optionalDecimal(c, "price"); !ok {
		return
	}
	if filter.SupplierID, ok = h.optionalUUID(c, "supplierId", "supplier"); !ok {
		return
	}

	result, err := h.products.List(c.Request.Context(), h.companyID(c), filter, page, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get godoc
//
//	@Summary	Get a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	catalog.ProductResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), h.companyID(c), id, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, product)
}

// Create godoc
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		request	body		catalog.CreateProductRequest	true	"Product"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if !h.bind(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product", product.ID)
}

// Update godoc
//
//	@Summary		Update a product
//	@Description	Dimensions are upserted and images are replaced
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"
//	@Param			request	body		catalog.UpdateProductRequest	true	"Changes"
//	@Success		200		{object}	catalog.ProductResponse
//	@Router			/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bind(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, product)
}

// Delete godoc
//
//	@Summary	Delete a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Product", id)
}

// ImageUploadURL godoc
//
//	@Summary	Presign a product image upload
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID"
//	@Param		request	body		catalog.UploadURLRequest	true	"Content type"
//	@Success	200		{object}	catalog.UploadURLResponse
//	@Router		/products/{id}/images/upload-url [post]
func (h *ProductHandler) ImageUploadURL(c *gin.Context) {
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}
	var req catalog.UploadURLRequest
	if !h.bind(c, &req) {
		return
	}
	target, err := h.products.ImageUploadURL(c.Request.Context(), middleware.CompanyID(c), id, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, target)
}
