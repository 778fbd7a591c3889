package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// CollectiveHandler serves teams or groups, depending on the service it wraps
type CollectiveHandler struct {
	BaseHandler
	svc *appidentity.CollectiveService
}

// NewCollectiveHandler creates a handler for svc.Kind()
func NewCollectiveHandler(base BaseHandler, svc *appidentity.CollectiveService) *CollectiveHandler {
	return &CollectiveHandler{BaseHandler: base, svc: svc}
}

func (h *CollectiveHandler) resource() string {
	return string(h.svc.Kind())
}

// param is the lower-case name used in "Invalid <x> id" messages
func (h *CollectiveHandler) param() string {
	return strings.ToLower(h.resource())
}

// List godoc
//
//	@Summary	List teams or groups
//	@Tags		teams, groups
//	@Produce	json
//	@Param		page	query		int	false	"Page number, zero based"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[appidentity.UnitResponse]
//	@Router		/teams [get]
//	@Router		/groups [get]
func (h *CollectiveHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.svc.List(c.Request.Context(), middleware.CompanyID(c), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Count godoc
//
//	@Summary	Count teams or groups
//	@Tags		teams, groups
//	@Produce	json
//	@Success	200	{object}	dto.CountResponse
//	@Router		/teams/count [get]
//	@Router		/groups/count [get]
func (h *CollectiveHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.CountResult(c, n)
}

// Get godoc
//
//	@Summary	Get a team or group
//	@Tags		teams, groups
//	@Produce	json
//	@Param		id	path		string	true	"Team or group ID"
//	@Success	200	{object}	appidentity.UnitResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/teams/{id} [get]
//	@Router		/groups/{id} [get]
func (h *CollectiveHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", h.param())
	if !ok {
		return
	}
	unit, err := h.svc.Get(c.Request.Context(), middleware.CompanyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, unit)
}

// Create godoc
//
//	@Summary	Create a team or group
//	@Tags		teams, groups
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.UnitRequest	true	"Team or group"
//	@Success	201		{object}	dto.MessageResponse
//	@Router		/teams [post]
//	@Router		/groups [post]
func (h *CollectiveHandler) Create(c *gin.Context) {
	var req appidentity.UnitRequest
	if !h.bind(c, &req) {
		return
	}
	unit, err := h.svc.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, h.resource(), unit.ID)
}

// Update godoc
//
//	@Summary	Update a team or group
//	@Tags		teams, groups
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Team or group ID"
//	@Param		request	body		appidentity.UnitRequest	true	"Team or group"
//	@Success	200		{object}	dto.MessageResponse
//	@Router		/teams/{id} [put]
//	@Router		/groups/{id} [put]
func (h *CollectiveHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", h.param())
	if !ok {
		return
	}
	var req appidentity.UnitRequest
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), middleware.CompanyID(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Updated(c, h.resource(), id)
}

// Delete godoc
//
//	@Summary	Delete a team or group
//	@Tags		teams, groups
//	@Produce	json
//	@Param		id	path		string	true	"Team or group ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Router		/teams/{id} [delete]
//	@Router		/groups/{id} [delete]
func (h *CollectiveHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", h.param())
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, h.resource(), id)
}

// AddMember godoc
//
//	@Summary		Add a member
//	@Description	Creates the membership (201), or reactivates an inactive one (200)
//	@Tags			teams, groups
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Team or group ID"
//	@Param			request	body		appidentity.AddMemberRequest	true	"Member"
//	@Success		200		{object}	dto.MessageResponse
//	@Success		201		{object}	dto.MessageResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Router			/teams/{id}/members [post]
//	@Router			/groups/{id}/members [post]
func (h *CollectiveHandler) AddMember(c *gin.Context) {
	id, ok := h.pathID(c, "id", h.param())
	if !ok {
		return
	}
	var req appidentity.AddMemberRequest
	if !h.bind(c, &req) {
		return
	}
	change, err := h.svc.AddMember(c.Request.Context(), middleware.CompanyID(c), id, req.MemberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	status := http.StatusOK
	if change.Outcome == identity.MembershipCreated {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewMessage(change.Message))
}

// RemoveMember godoc
//
//	@Summary	Remove a member
//	@Tags		teams, groups
//	@Produce	json
//	@Param		id			path		string	true	"Team or group ID"
//	@Param		memberId	path		string	true	"User ID"
//	@Success	200			{object}	dto.MessageResponse
//	@Failure	404			{object}	dto.ErrorResponse
//	@Router		/teams/{id}/members/{memberId} [delete]
//	@Router		/groups/{id}/members/{memberId} [delete]
func (h *CollectiveHandler) RemoveMember(c *gin.Context) {
	id, ok := h.pathID(c, "id", h.param())
	if !ok {
		return
	}
	memberID, ok := h.pathID(c, "memberId", "member")
	if !ok {
		return
	}
	if err := h.svc.RemoveMember(c.Request.Context(), middleware.CompanyID(c), id, memberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, fmt.Sprintf("Member %s removed from %s %s", memberID, h.resource(), id))
}
