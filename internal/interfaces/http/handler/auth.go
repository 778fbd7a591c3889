package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// Auth response messages
const (
	MsgLoginRequested = "Your request has been processed successfully"
	MsgTokenValid     = "Token is valid"
	MsgTokenRefreshed = "Token refreshed"
	MsgLoggedOut      = "Logged out successfully"
	MsgSignedUp       = "User created successfully"
)

// AuthHandler runs the passwordless login flow
type AuthHandler struct {
	BaseHandler
	auth    *appidentity.AuthService
	cookies *middleware.CookieWriter
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(base BaseHandler, auth *appidentity.AuthService, cookies *middleware.CookieWriter) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth, cookies: cookies}
}

// Login godoc
//
//	@Summary		Request a login link
//	@Description	Emails a one-time login link. Users with a password must also send it.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appidentity.RequestLoginInput	true	"Login request"
//	@Success		200		{object}	dto.MessageResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		401		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		429		{object}	dto.ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.RequestLoginInput
	if !h.bind(c, &req) {
		return
	}
	if err := h.auth.RequestLogin(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, MsgLoginRequested)
}

// ValidateToken godoc
//
//	@Summary		Exchange a login token for a session
//	@Description	Sets the session and refreshToken cookies
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appidentity.ValidateTokenInput	true	"Login token"
//	@Success		200		{object}	dto.MessageResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		401		{object}	dto.ErrorResponse
//	@Router			/auth/validate-token [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req appidentity.ValidateTokenInput
	if !h.bind(c, &req) {
		return
	}
	tokens, err := h.auth.ValidateToken(c.Request.Context(), req.LoginToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.cookies.SetSession(c, tokens.Session)
	h.cookies.SetRefresh(c, tokens.Refresh)
	h.Message(c, MsgTokenValid)
}

// RefreshToken godoc
//
//	@Summary		Rotate the session
//	@Description	Issues a new session cookie from the refreshToken cookie
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.MessageResponse
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		403	{object}	dto.ErrorResponse
//	@Router			/auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refresh, _ := c.Cookie(middleware.RefreshCookie)
	session, err := h.auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.cookies.SetSession(c, session)
	h.Message(c, MsgTokenRefreshed)
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Ends the session and clears both cookies
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.MessageResponse
//	@Failure		401	{object}	dto.ErrorResponse
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.cookies.Clear(c)
	h.Message(c, MsgLoggedOut)
}

// SignUp godoc
//
//	@Summary		Register a storefront customer
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appidentity.SignUpInput	true	"Sign-up data"
//	@Success		201		{object}	dto.MessageResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		409		{object}	dto.ErrorResponse
//	@Router			/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req appidentity.SignUpInput
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.auth.SignUp(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMessage(MsgSignedUp))
}
