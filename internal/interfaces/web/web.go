// Package web serves the server-rendered employee portal: the passwordless
// login pages, the dashboard and the user directory.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/audit"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Portal paths
const (
	LoginPath     = "/"
	DashboardPath = "/app"
	UsersPath     = "/app/users"
)

// ChartDays is how many days of logins the dashboard plots
const ChartDays = 14

const usersPerPage = 20

// LoginService runs the emailed-link login
type LoginService interface {
	RequestLogin(ctx context.Context, input appidentity.RequestLoginInput) error
	ValidateToken(ctx context.Context, loginToken string) (*appidentity.SessionTokens, error)
}

// Directory reads the employee directory and org chart
type Directory interface {
	List(ctx context.Context, companyID uuid.UUID, filter appidentity.UserListFilter, page shared.PageRequest) (shared.Page[appidentity.UserResponse], error)
	Hierarchy(ctx context.Context, companyID uuid.UUID) ([]appidentity.HierarchyNode, error)
}

// LoginStats reports daily login counts
type LoginStats interface {
	LoginCounts(ctx context.Context, companyID uuid.UUID, days int) ([]audit.DailyLogins, error)
}

// Handler serves the portal pages
type Handler struct {
	renderer  *Renderer
	logins    LoginService
	directory Directory
	stats     LoginStats
	cookies   *middleware.CookieWriter
}

// NewHandler creates a portal Handler
func NewHandler(renderer *Renderer, logins LoginService, directory Directory, stats LoginStats, cookies *middleware.CookieWriter) *Handler {
	return &Handler{
		renderer:  renderer,
		logins:    logins,
		directory: directory,
		stats:     stats,
		cookies:   cookies,
	}
}

// Register mounts the portal. session must redirect anonymous visitors to LoginPath.
func (h *Handler) Register(engine *gin.Engine, session gin.HandlerFunc) {
	engine.GET(LoginPath, h.LoginForm)
	engine.POST(LoginPath, h.RequestLogin)
	engine.GET("/login/:token", h.CompleteLogin)

	app := engine.Group(DashboardPath, session)
	app.GET("", h.Dashboard)
	app.GET("/users", h.Users)
}

type loginPage struct {
	Email string
	Sent  bool
	Error string
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm renders the email form
func (h *Handler) LoginForm(c *gin.Context) {
	h.renderer.Render(c, http.StatusOK, "login", loginPage{Sent: c.Query("sent") == "1"})
}

// RequestLogin emails a login link and redirects back with a confirmation
func (h *Handler) RequestLogin(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)

	err := h.logins.RequestLogin(c.Request.Context(), appidentity.RequestLoginInput{Email: form.Email, Password: form.Password})
	if err != nil {
		status, msg := h.failure(c, err)
		h.renderer.Render(c, status, "login", loginPage{Email: form.Email, Error: msg})
		return
	}
	c.Redirect(http.StatusSeeOther, LoginPath+"?sent=1")
}

// CompleteLogin exchanges the emailed token for session cookies
func (h *Handler) CompleteLogin(c *gin.Context) {
	tokens, err := h.logins.ValidateToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		status, msg := h.failure(c, err)
		h.renderer.Render(c, status, "login", loginPage{Error: msg})
		return
	}
	h.cookies.SetSession(c, tokens.Session)
	h.cookies.SetRefresh(c, tokens.Refresh)
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

type dashboardPage struct {
	User  appidentity.UserResponse
	Chart Chart
	Tree  []appidentity.HierarchyNode
}

// Dashboard shows recent logins and the org chart
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	days, err := h.stats.LoginCounts(ctx, user.CompanyID, ChartDays)
	if err != nil {
		h.renderError(c, err)
		return
	}
	tree, err := h.directory.Hierarchy(ctx, user.CompanyID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.renderer.Render(c, http.StatusOK, "dashboard", dashboardPage{
		User:  appidentity.ToUserResponse(user),
		Chart: NewLoginChart(days),
		Tree:  tree,
	})
}

type usersPage struct {
	User   appidentity.UserResponse
	Users  []appidentity.UserResponse
	Page   int
	Next   bool
	Search string
}

// Users lists the directory one page at a time
func (h *Handler) Users(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pageNum, _ := strconv.Atoi(c.Query("page"))
	page := shared.NewPageRequest(pageNum, usersPerPage)
	search := c.Query("search")

	result, err := h.directory.List(c.Request.Context(), user.CompanyID, appidentity.UserListFilter{Search: search}, page)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.renderer.Render(c, http.StatusOK, "users", usersPage{
		User:   appidentity.ToUserResponse(user),
		Users:  result.Data,
		Page:   page.Page,
		Next:   result.Next,
		Search: search,
	})
}

// failure maps err to a status and the message shown on the page
func (h *Handler) failure(c *gin.Context, err error) (int, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return dto.GetHTTPStatus(domainErr.Code), domainErr.Message
	}
	logger.L(c.Request.Context()).Error("Portal request failed", zap.Error(err))
	return http.StatusInternalServerError, "Something went wrong. Please try again."
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status, msg := h.failure(c, err)
	h.renderer.Render(c, status, "error", gin.H{"Status": status, "Message": msg})
}
