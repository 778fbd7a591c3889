package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
)

// Cookie names
const (
	SessionCookie = "session"
	RefreshCookie = "refreshToken"
)

// Context keys set by Session
const (
	CurrentUserKey   = "current_user"
	SessionClaimsKey = "session_claims"
)

// Authenticator resolves a session token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, sessionToken string) (*identity.User, *auth.SessionClaims, error)
}

// Session requires a valid session cookie and attaches the live user to the request
func Session(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, a); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// SessionOrRedirect is Session for browser pages: failures redirect to loginPath
func SessionOrRedirect(a Authenticator, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, a); err != nil {
			_ = c.Error(err)
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalSession attaches the user when a valid session cookie is present and
// lets anonymous requests through. Store failures still answer 500.
func OptionalSession(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Cookie(SessionCookie); err != nil {
			c.Next()
			return
		}
		if err := authenticate(c, a); err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) {
				AbortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, a Authenticator) error {
	token, _ := c.Cookie(SessionCookie)
	user, claims, err := a.Authenticate(c.Request.Context(), token)
	if err != nil {
		return err
	}

	c.Set(CurrentUserKey, user)
	c.Set(SessionClaimsKey, claims)
	ctx := logger.WithSession(c.Request.Context(), user.CompanyID.String(), user.ID.String())
	c.Request = c.Request.WithContext(ctx)
	return nil
}

// CurrentUser returns the user attached by Session, or nil
func CurrentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if u, ok := v.(*identity.User); ok {
			return u
		}
	}
	return nil
}

// CompanyID returns the tenant of the current user
func CompanyID(c *gin.Context) uuid.UUID {
	if u := CurrentUser(c); u != nil {
		return u.CompanyID
	}
	return uuid.Nil
}

// CookieWriter sets and clears the auth cookies
type CookieWriter struct {
	cfg    config.CookieConfig
	secure bool
}

// NewCookieWriter creates a CookieWriter. Cookies are Secure unless running in development.
func NewCookieWriter(cfg config.CookieConfig, development bool) *CookieWriter {
	return &CookieWriter{cfg: cfg, secure: cfg.Secure || !development}
}

// SetSession writes the session cookie
func (w *CookieWriter) SetSession(c *gin.Context, token auth.SignedToken) {
	w.set(c, SessionCookie, token.Value, token.ExpiresAt)
}

// SetRefresh writes the refresh cookie
func (w *CookieWriter) SetRefresh(c *gin.Context, token auth.SignedToken) {
	w.set(c, RefreshCookie, token.Value, token.ExpiresAt)
}

// Clear expires both cookies
func (w *CookieWriter) Clear(c *gin.Context) {
	w.set(c, SessionCookie, "", time.Unix(0, 0))
	w.set(c, RefreshCookie, "", time.Unix(0, 0))
}

func (w *CookieWriter) set(c *gin.Context, name, value string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if value == "" || maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     w.cfg.Path,
		Domain:   w.cfg.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   w.secure,
		HttpOnly: true,
		SameSite: sameSite(w.cfg.SameSite),
	})
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
