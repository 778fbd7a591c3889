package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/audit"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockLogins struct {
	mock.Mock
}

func (m *mockLogins) RequestLogin(ctx context.Context, input appidentity.RequestLoginInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockLogins) ValidateToken(ctx context.Context, loginToken string) (*appidentity.SessionTokens, error) {
	args := m.Called(ctx, loginToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.SessionTokens), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) List(ctx context.Context, companyID uuid.UUID, filter appidentity.UserListFilter, page shared.PageRequest) (shared.Page[appidentity.UserResponse], error) {
	args := m.Called(ctx, companyID, filter, page)
	return args.Get(0).(shared.Page[appidentity.UserResponse]), args.Error(1)
}

func (m *mockDirectory) Hierarchy(ctx context.Context, companyID uuid.UUID) ([]appidentity.HierarchyNode, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]appidentity.HierarchyNode), args.Error(1)
}

type mockStats struct {
	mock.Mock
}

func (m *mockStats) LoginCounts(ctx context.Context, companyID uuid.UUID, days int) ([]audit.DailyLogins, error) {
	args := m.Called(ctx, companyID, days)
	return args.Get(0).([]audit.DailyLogins), args.Error(1)
}

// fakeAuthenticator accepts the single token "good"
type fakeAuthenticator struct {
	user *identity.User
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, *auth.SessionClaims, error) {
	if token != "good" {
		return nil, nil, shared.NewDomainError(shared.CodeUnauthorized, "Unauthorized")
	}
	return f.user, &auth.SessionClaims{}, nil
}

type portal struct {
	engine    *gin.Engine
	logins    *mockLogins
	directory *mockDirectory
	stats     *mockStats
	user      *identity.User
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)

	p := &portal{
		engine:    gin.New(),
		logins:    new(mockLogins),
		directory: new(mockDirectory),
		stats:     new(mockStats),
		user: &identity.User{
			BaseEntity: shared.NewBaseEntity(),
			CompanyID:  uuid.New(),
			Email:      "ada@example.com",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Role:       identity.RoleManager,
		},
	}
	cookies := middleware.NewCookieWriter(config.CookieConfig{Path: "/", SameSite: "strict"}, true)
	h := NewHandler(renderer, p.logins, p.directory, p.stats, cookies)
	h.Register(p.engine, middleware.SessionOrRedirect(fakeAuthenticator{user: p.user}, LoginPath))
	return p
}

func (p *portal) get(path string, session bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "good"})
	}
	w := httptest.NewRecorder()
	p.engine.ServeHTTP(w, req)
	return w
}

func TestLoginForm(t *testing.T) {
	p := newPortal(t)

	w := p.get("/", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `<form method="post" action="/">`)
	assert.NotContains(t, w.Body.String(), "Check your inbox")

	w = p.get("/?sent=1", false)
	assert.Contains(t, w.Body.String(), "Check your inbox")
}

func TestRequestLogin(t *testing.T) {
	post := func(p *portal, email string) *httptest.ResponseRecorder {
		form := url.Values{"email": {email}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		p.engine.ServeHTTP(w, req)
		return w
	}

	t.Run("redirects with a notice", func(t *testing.T) {
		p := newPortal(t)
		p.logins.On("RequestLogin", mock.Anything, appidentity.RequestLoginInput{Email: "ada@example.com"}).Return(nil)

		w := post(p, "ada@example.com")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?sent=1", w.Header().Get("Location"))
	})

	t.Run("throttled request re-renders the form", func(t *testing.T) {
		p := newPortal(t)
		p.logins.On("RequestLogin", mock.Anything, mock.Anything).
			Return(shared.NewDomainError(shared.CodeTooManyRequests, "Please wait before requesting another link"))

		w := post(p, "ada@example.com")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Please wait before requesting another link")
		assert.Contains(t, w.Body.String(), `value="ada@example.com"`)
	})

	t.Run("unexpected errors are hidden", func(t *testing.T) {
		p := newPortal(t)
		p.logins.On("RequestLogin", mock.Anything, mock.Anything).Return(errors.New("mail queue down"))

		w := post(p, "ada@example.com")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mail queue down")
	})
}

func TestCompleteLogin(t *testing.T) {
	t.Run("sets cookies and opens the dashboard", func(t *testing.T) {
		p := newPortal(t)
		expires := time.Now().Add(time.Hour)
		p.logins.On("ValidateToken", mock.Anything, "tok-1").Return(&appidentity.SessionTokens{
			Session: auth.SignedToken{Value: "session-jwt", ExpiresAt: expires},
			Refresh: auth.SignedToken{Value: "refresh-jwt", ExpiresAt: expires},
			User:    p.user,
		}, nil)

		w := p.get("/login/tok-1", false)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, DashboardPath, w.Header().Get("Location"))

		cookies := map[string]string{}
		for _, c := range w.Result().Cookies() {
			cookies[c.Name] = c.Value
		}
		assert.Equal(t, "session-jwt", cookies[middleware.SessionCookie])
		assert.Equal(t, "refresh-jwt", cookies[middleware.RefreshCookie])
	})

	t.Run("expired link shows the form with the error", func(t *testing.T) {
		p := newPortal(t)
		p.logins.On("ValidateToken", mock.Anything, "stale").
			Return(nil, shared.NewDomainError(shared.CodeUnauthorized, "Login link expired"))

		w := p.get("/login/stale", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Login link expired")
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestDashboard(t *testing.T) {
	t.Run("anonymous visitors are redirected to login", func(t *testing.T) {
		p := newPortal(t)
		w := p.get("/app", false)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("renders chart and org tree", func(t *testing.T) {
		p := newPortal(t)
		p.stats.On("LoginCounts", mock.Anything, p.user.CompanyID, ChartDays).Return([]audit.DailyLogins{
			{Day: "2026-10-15", Count: 2},
			{Day: "2026-10-16", Count: 4},
		}, nil)
		p.directory.On("Hierarchy", mock.Anything, p.user.CompanyID).Return([]appidentity.HierarchyNode{
			{Name: "Grace Hopper", Role: identity.RoleAdmin, Subordinates: []appidentity.HierarchyNode{
				{Name: "Ada Lovelace", Role: identity.RoleManager, Title: "Analyst"},
			}},
		}, nil)

		w := p.get("/app", true)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Welcome back, Ada")
		assert.Contains(t, body, "6 in total")
		assert.Equal(t, 2, strings.Count(body, `<rect class="bar"`))
		assert.Contains(t, body, "10/16")
		assert.Contains(t, body, "Grace Hopper")
		assert.Contains(t, body, "Analyst")
		assert.Contains(t, body, ">GH<")
	})

	t.Run("store failure renders the error page", func(t *testing.T) {
		p := newPortal(t)
		p.stats.On("LoginCounts", mock.Anything, mock.Anything, mock.Anything).
			Return([]audit.DailyLogins(nil), errors.New("db down"))

		w := p.get("/app", true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
		p.directory.AssertNotCalled(t, "Hierarchy", mock.Anything, mock.Anything)
	})
}

func TestUsers(t *testing.T) {
	p := newPortal(t)
	p.directory.On("List", mock.Anything, p.user.CompanyID, appidentity.UserListFilter{Search: "love"}, shared.NewPageRequest(1, usersPerPage)).
		Return(shared.Page[appidentity.UserResponse]{
			Data: []appidentity.UserResponse{{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: identity.RoleManager}},
			Next: true,
		}, nil)

	w := p.get("/app/users?page=1&search=love", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "Manager")
	assert.Contains(t, body, "Page 2")
	assert.Contains(t, body, "page=0")
	assert.Contains(t, body, "page=2")
}
