package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// CompanyHandler serves company branding
type CompanyHandler struct {
	BaseHandler
	settings *appidentity.CompanySettingsService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(base BaseHandler, settings *appidentity.CompanySettingsService) *CompanyHandler {
	return &CompanyHandler{BaseHandler: base, settings: settings}
}

// GetSettings godoc
//
//	@Summary	Get company settings
//	@Tags		company
//	@Produce	json
//	@Success	200	{object}	appidentity.CompanySettingsResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/company/settings [get]
func (h *CompanyHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, settings)
}

// UpdateSettings godoc
//
//	@Summary		Update company settings
//	@Description	Creates the settings on first use. At least one field is required.
//	@Tags			company
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appidentity.CompanySettingsRequest	true	"Settings"
//	@Success		200		{object}	appidentity.CompanySettingsResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/company/settings [put]
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	var req appidentity.CompanySettingsRequest
	if !h.bind(c, &req) {
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, settings)
}

// LogoUploadURL godoc
//
//	@Summary	Presign a logo upload
//	@Tags		company
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.UploadURLRequest	true	"Content type"
//	@Success	200		{object}	appidentity.UploadURLResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/company/settings/logo-upload-url [post]
func (h *CompanyHandler) LogoUploadURL(c *gin.Context) {
	var req appidentity.UploadURLRequest
	if !h.bind(c, &req) {
		return
	}
	target, err := h.settings.LogoUploadURL(c.Request.Context(), middleware.CompanyID(c), req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, target)
}
