package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/featureflag"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// FeatureFlagHandler serves feature flag administration
type FeatureFlagHandler struct {
	BaseHandler
	flags *featureflag.FlagService
}

// NewFeatureFlagHandler creates a new FeatureFlagHandler
func NewFeatureFlagHandler(base BaseHandler, flags *featureflag.FlagService) *FeatureFlagHandler {
	return &FeatureFlagHandler{BaseHandler: base, flags: flags}
}

// List godoc
//
//	@Summary	List feature flags
//	@Tags		feature-flags
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[featureflag.FlagResponse]
//	@Router		/feature-flags [get]
func (h *FeatureFlagHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.flags.List(c.Request.Context(), middleware.CompanyID(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Get godoc
//
//	@Summary	Get a feature flag
//	@Tags		feature-flags
//	@Produce	json
//	@Param		id	path		string	true	"Flag ID"
//	@Success	200	{object}	featureflag.FlagResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/feature-flags/{id} [get]
func (h *FeatureFlagHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "feature flag")
	if !ok {
		return
	}
	flag, err := h.flags.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, flag)
}

// Create godoc
//
//	@Summary	Create a feature flag
//	@Tags		feature-flags
//	@Accept		json
//	@Produce	json
//	@Param		request	body		featureflag.FlagRequest	true	"Flag"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/feature-flags [post]
func (h *FeatureFlagHandler) Create(c *gin.Context) {
	var req featureflag.FlagRequest
	if !h.bind(c, &req) {
		return
	}
	flag, err := h.flags.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Feature flag", flag.ID)
}

// Update godoc
//
//	@Summary	Update a feature flag
//	@Tags		feature-flags
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Flag ID"
//	@Param		request	body		featureflag.FlagRequest	true	"Flag"
//	@Success	200		{object}	featureflag.FlagResponse
//	@Router		/feature-flags/{id} [put]
func (h *FeatureFlagHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "feature flag")
	if !ok {
		return
	}
	var req featureflag.FlagRequest
	if !h.bind(c, &req) {
		return
	}
	flag, err := h.flags.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, flag)
}

// Delete godoc
//
//	@Summary		Deactivate a feature flag
//	@Description	The flag is kept with isActive=false
//	@Tags			feature-flags
//	@Produce		json
//	@Param			id	path		string	true	"Flag ID"
//	@Success		200	{object}	dto.MessageResponse
//	@Router			/feature-flags/{id} [delete]
func (h *FeatureFlagHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "feature flag")
	if !ok {
		return
	}
	if err := h.flags.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Feature flag", id)
}
