package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// UserHandler serves the employee directory
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(base BaseHandler, users *appidentity.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

// listFilter reads the user directory filters from the query string
func (h *UserHandler) listFilter(c *gin.Context) (appidentity.UserListFilter, bool) {
	filter := appidentity.UserListFilter{Search: c.Query("search")}
	var ok bool
	if filter.DepartmentID, ok = h.optionalUUID(c, "departmentId", "department"); !ok {
		return filter, false
	}
	if filter.TeamID, ok = h.optionalUUID(c, "teamId", "team"); !ok {
		return filter, false
	}
	if filter.GroupID, ok = h.optionalUUID(c, "groupId", "group"); !ok {
		return filter, false
	}
	if filter.LocationID, ok = h.optionalUUID(c, "locationId", "location"); !ok {
		return filter, false
	}
	return filter, true
}

// List godoc
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Param			page			query		int		false	"Page number, zero based"
//	@Param			limit			query		int		false	"Page size (max 100)"
//	@Param			search			query		string	false	"Name or email contains"
//	@Param			departmentId	query		string	false	"Department ID"
//	@Param			teamId			query		string	false	"Team ID"
//	@Param			groupId			query		string	false	"Group ID"
//	@Param			locationId		query		string	false	"Location ID"
//	@Success		200				{object}	shared.Page[appidentity.UserResponse]
//	@Failure		400				{object}	dto.ErrorResponse
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	result, err := h.users.List(c.Request.Context(), middleware.CompanyID(c), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Count godoc
//
//	@Summary	Count users
//	@Tags		users
//	@Produce	json
//	@Param		search			query		string	false	"Name or email contains"
//	@Param		departmentId	query		string	false	"Department ID"
//	@Success	200				{object}	dto.CountResponse
//	@Router		/users/count [get]
func (h *UserHandler) Count(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	n, err := h.users.Count(c.Request.Context(), middleware.CompanyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.CountResult(c, n)
}

// Me godoc
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	appidentity.UserResponse
//	@Router		/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	h.OK(c, appidentity.ToUserResponse(middleware.CurrentUser(c)))
}

// Get godoc
//
//	@Summary		Get a user
//	@Description	Admins also receive the private profile
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	appidentity.UserResponse
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Router			/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), middleware.CompanyID(c), id, middleware.CurrentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

// Teams godoc
//
//	@Summary	Teams a user belongs to
//	@Tags		users
//	@Produce	json
//	@Param		id		path		string	true	"User ID"
//	@Param		page	query		int		false	"Page number, zero based"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Success	200		{object}	shared.Page[appidentity.TeamSummary]
//	@Router		/users/{id}/teams [get]
func (h *UserHandler) Teams(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	page, ok := h.page(c)
	if !ok {
		return
	}
	result, err := h.users.Teams(c.Request.Context(), id, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Hierarchy godoc
//
//	@Summary	Organization chart
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	appidentity.HierarchyNode
//	@Router		/users/org-hierarchy [get]
func (h *UserHandler) Hierarchy(c *gin.Context) {
	tree, err := h.users.Hierarchy(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, tree)
}

// Create godoc
//
//	@Summary	Create a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		appidentity.CreateUserRequest	true	"User"
//	@Success	201		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.users.Create(c.Request.Context(), middleware.CompanyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "User", user.ID)
}

// Update godoc
//
//	@Summary	Update a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"User ID"
//	@Param		request	body		appidentity.UpdateUserRequest	true	"Changes"
//	@Success	200		{object}	appidentity.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	var req appidentity.UpdateUserRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), middleware.CompanyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, user)
}

// UpdateDetails godoc
//
//	@Summary		Record a title or salary change
//	@Description	Writes a user history entry with the given action type
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		appidentity.UpdateDetailsRequest	true	"Details"
//	@Success		200		{object}	dto.MessageResponse
//	@Router			/users/{id}/details [patch]
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	var req appidentity.UpdateDetailsRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.users.UpdateDetails(c.Request.Context(), middleware.CompanyID(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "User details updated successfully")
}

// Delete godoc
//
//	@Summary	Delete a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "User deleted successfully")
}
