package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// LocationHandler serves office locations
type LocationHandler struct {
	BaseHandler
	locations *appidentity.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(base BaseHandler, locations *appidentity.LocationService) *LocationHandler {
	return &LocationHandler{BaseHandler: base, locations: locations}
}

// List godoc
//
//	@Summary	List locations
//	@Tags		locations
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[appidentity.LocationResponse]
//	@Router		/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.locations.List(c.Request.Context(), middleware.CompanyID(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Count godoc
//
//	@Summary	Count locations
//	@Tags		locations
//	@Produce	json
//	@Success	200	{object}	dto.CountResponse
//	@Router		/locations/count [get]
func (h *LocationHandler) Count(c *gin.Context) {
	n, err := h.locations.Count(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.CountResult(c, n)
}

// Get godoc
//
//	@Summary	Get a location
//	@Tags		locations
//	@Produce	json
//	@Param		id	path		string	true	"Location ID"
//	@Success	200	{object}	appidentity.LocationResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "location")
	if !ok {
		return
	}
	loc, err := h.locations.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, loc)
}

// Create godoc
//
//	@Summary	Create a location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.LocationRequest	true	"Location"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req appidentity.LocationRequest
	if !h.bind(c, &req) {
		return
	}
	loc, err := h.locations.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Location", loc.ID)
}

// Update godoc
//
//	@Summary	Update a location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Location ID"
//	@Param		request	body		appidentity.LocationRequest	true	"Location"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "location")
	if !ok {
		return
	}
	var req appidentity.LocationRequest
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.locations.Update(c.Request.Context(), middleware.CompanyID(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, "Location", id)
}

// Delete godoc
//
//	@Summary	Delete a location
//	@Tags		locations
//	@Produce	json
//	@Param		id	path		string	true	"Location ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "location")
	if !ok {
		return
	}
	if err := h.locations.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Location", id)
}

// DepartmentHandler serves departments
type DepartmentHandler struct {
	BaseHandler
	departments *appidentity.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(base BaseHandler, departments *appidentity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{BaseHandler: base, departments: departments}
}

// List godoc
//
//	@Summary	List departments
//	@Tags		departments
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[appidentity.UnitResponse]
//	@Router		/departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.departments.List(c.Request.Context(), middleware.CompanyID(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Count godoc
//
//	@Summary	Count departments
//	@Tags		departments
//	@Produce	json
//	@Success	200	{object}	dto.CountResponse
//	@Router		/departments/count [get]
func (h *DepartmentHandler) Count(c *gin.Context) {
	n, err := h.departments.Count(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.CountResult(c, n)
}

// Get godoc
//
//	@Summary	Get a department
//	@Tags		departments
//	@Produce	json
//	@Param		id	path		string	true	"Department ID"
//	@Success	200	{object}	appidentity.UnitResponse
//	@Router		/departments/{id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "department")
	if !ok {
		return
	}
	dept, err := h.departments.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dept)
}

// Create godoc
//
//	@Summary	Create a department
//	@Tags		departments
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.UnitRequest	true	"Department"
//	@Success	201		{object}	dto.MessageResponse
//	@Router		/departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req appidentity.UnitRequest
	if !h.bind(c, &req) {
		return
	}
	dept, err := h.departments.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Department", dept.ID)
}

// Update godoc
//
//	@Summary	Update a department
//	@Tags		departments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Department ID"
//	@Param		request	body		appidentity.UnitRequest	true	"Department"
//	@Success	200		{object}	dto.MessageResponse
//	@Router		/departments/{id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "department")
	if !ok {
		return
	}
	var req appidentity.UnitRequest
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.departments.Update(c.Request.Context(), middleware.CompanyID(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, "Department", id)
}

// Delete godoc
//
//	@Summary	Delete a department
//	@Tags		departments
//	@Produce	json
//	@Param		id	path		string	true	"Department ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "department")
	if !ok {
		return
	}
	if err := h.departments.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Department", id)
}
