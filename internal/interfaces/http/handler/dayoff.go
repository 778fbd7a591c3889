package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// DayOffHandler serves company holidays
type DayOffHandler struct {
	BaseHandler
	dayoffs *appidentity.DayOffService
}

// NewDayOffHandler creates a new DayOffHandler
func NewDayOffHandler(base BaseHandler, dayoffs *appidentity.DayOffService) *DayOffHandler {
	return &DayOffHandler{BaseHandler: base, dayoffs: dayoffs}
}

// List godoc
//
//	@Summary	List days off
//	@Tags		dayoffs
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[appidentity.DayOffResponse]
//	@Router		/dayoffs [get]
func (h *DayOffHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.dayoffs.List(c.Request.Context(), middleware.CompanyID(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Count godoc
//
//	@Summary		Count upcoming days off
//	@Description	Days off starting between now and the end of the year
//	@Tags			dayoffs
//	@Produce		json
//	@Success		200	{object}	dto.CountResponse
//	@Router			/dayoffs/count [get]
func (h *DayOffHandler) Count(c *gin.Context) {
	n, err := h.dayoffs.CountUpcoming(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.CountResult(c, n)
}

// Create godoc
//
//	@Summary	Create a day off
//	@Tags		dayoffs
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.DayOffRequest	true	"Day off"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/dayoffs [post]
func (h *DayOffHandler) Create(c *gin.Context) {
	var req appidentity.DayOffRequest
	if !h.bind(c, &req) {
		return
	}
	d, err := h.dayoffs.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Holiday", d.ID)
}

// Update godoc
//
//	@Summary	Update a day off
//	@Tags		dayoffs
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Day off ID"
//	@Param		request	body		appidentity.DayOffRequest	true	"Day off"
//	@Success	200		{object}	dto.MessageResponse
//	@Router		/dayoffs/{id} [put]
func (h *DayOffHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "holiday")
	if !ok {
		return
	}
	var req appidentity.DayOffRequest
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.dayoffs.Update(c.Request.Context(), middleware.CompanyID(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, "Holiday", id)
}

// Delete godoc
//
//	@Summary	Delete a day off
//	@Tags		dayoffs
//	@Produce	json
//	@Param		id	path		string	true	"Day off ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/dayoffs/{id} [delete]
func (h *DayOffHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "holiday")
	if !ok {
		return
	}
	if err := h.dayoffs.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Holiday", id)
}
