package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuthenticator accepts exactly one token
type stubAuthenticator struct {
	token string
	user  *identity.User
	err   error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, *auth.SessionClaims, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if token == "" || token != s.token {
		return nil, nil, shared.NewDomainError(shared.CodeUnauthorized, "Unauthorized")
	}
	return s.user, &auth.SessionClaims{SessionID: "sess-1", Role: string(s.user.Role)}, nil
}

func newUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(uuid.New(), "ada@example.com", "Ada", "Lovelace", role)
	require.NoError(t, err)
	return u
}

func perform(r http.Handler, method, path string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withSession(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
}

func withHeader(key, value string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}
