package middleware

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	user := newUser(t, identity.RoleEmployee)
	a := &stubAuthenticator{token: "good", user: user}

	router := gin.New()
	router.GET("/me", Session(a), func(c *gin.Context) {
		assert.Equal(t, user.CompanyID, CompanyID(c))
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})

	t.Run("valid cookie", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me", withSession("good"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("missing cookie", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Unauthorized"`)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me", withSession("stale"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSession_StoreFailureIs500(t *testing.T) {
	a := &stubAuthenticator{err: errors.New("db down")}
	router := gin.New()
	router.GET("/me", Session(a), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/me", withSession("good"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestSessionOrRedirect(t *testing.T) {
	a := &stubAuthenticator{token: "good", user: newUser(t, identity.RoleAdmin)}
	router := gin.New()
	router.GET("/app", SessionOrRedirect(a, "/"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/app")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = perform(router, http.MethodGet, "/app", withSession("good"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name   string
		role   identity.Role
		status int
	}{
		{"admin allowed", identity.RoleAdmin, http.StatusOK},
		{"manager allowed", identity.RoleManager, http.StatusOK},
		{"employee forbidden", identity.RoleEmployee, http.StatusForbidden},
		{"storefront user forbidden", identity.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &stubAuthenticator{token: "good", user: newUser(t, tt.role)}
			router := gin.New()
			router.GET("/teams", Session(a), RequireRoles(identity.RoleAdmin, identity.RoleManager),
				func(c *gin.Context) { c.Status(http.StatusOK) })

			w := perform(router, http.MethodGet, "/teams", withSession("good"))
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"message":"Forbidden"`)
			}
		})
	}
}

func TestRequireSelfOrRoles(t *testing.T) {
	employee := newUser(t, identity.RoleEmployee)
	a := &stubAuthenticator{token: "good", user: employee}
	router := gin.New()
	router.GET("/users/:id/teams", Session(a), RequireSelfOrRoles("id", identity.RoleAdmin, identity.RoleManager),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/users/"+employee.ID.String()+"/teams", withSession("good"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/users/5b6c6a02-79a5-4a8c-9c3e-1b2f1d0e7c11/teams", withSession("good"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCookieWriter(t *testing.T) {
	cfg := config.CookieConfig{Path: "/", SameSite: "strict"}

	t.Run("development cookies are not secure", func(t *testing.T) {
		w := NewCookieWriter(cfg, true)
		router := gin.New()
		router.GET("/login", func(c *gin.Context) {
			w.SetSession(c, auth.SignedToken{Value: "s", ExpiresAt: time.Now().Add(time.Hour)})
			w.SetRefresh(c, auth.SignedToken{Value: "r", ExpiresAt: time.Now().Add(time.Hour)})
		})

		resp := perform(router, http.MethodGet, "/login").Result()
		cookies := resp.Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.False(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
		assert.Equal(t, RefreshCookie, cookies[1].Name)
	})

	t.Run("production cookies are secure and clear expires both", func(t *testing.T) {
		w := NewCookieWriter(cfg, false)
		router := gin.New()
		router.GET("/logout", func(c *gin.Context) { w.Clear(c) })

		cookies := perform(router, http.MethodGet, "/logout").Result().Cookies()
		require.Len(t, cookies, 2)
		for _, ck := range cookies {
			assert.True(t, ck.Secure)
			assert.Empty(t, ck.Value)
			assert.Equal(t, -1, ck.MaxAge)
		}
	})
}

func TestOptionalSession(t *testing.T) {
	user := newUser(t, identity.RoleAdmin)
	a := &stubAuthenticator{token: "good", user: user}
	router := gin.New()
	router.GET("/products", OptionalSession(a), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": IsAdmin(c)})
	})

	assert.JSONEq(t, `{"admin":false}`, perform(router, http.MethodGet, "/products").Body.String())
	assert.JSONEq(t, `{"admin":false}`, perform(router, http.MethodGet, "/products", withSession("stale")).Body.String())
	assert.JSONEq(t, `{"admin":true}`, perform(router, http.MethodGet, "/products", withSession("good")).Body.String())
}
