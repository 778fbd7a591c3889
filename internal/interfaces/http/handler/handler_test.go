package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestUser(role identity.Role) *identity.User {
	return &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  uuid.New(),
		Email:      strings.ToLower(string(role)) + "@example.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Role:       role,
	}
}

// newEngine returns an engine whose requests run as user; a nil user is anonymous
func newEngine(user *identity.User) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CurrentUserKey, user)
		}
		c.Next()
	})
	return engine
}

func perform(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestBaseHandler_HandleError(t *testing.T) {
	t.Run("domain errors keep their status and are not recorded", func(t *testing.T) {
		rec := &errorRecorder{}
		h := NewBaseHandler(rec)
		engine := newEngine(nil)
		engine.GET("/x", func(c *gin.Context) {
			h.HandleError(c, shared.NewNotFoundError("Team"))
		})

		w := perform(engine, http.MethodGet, "/x", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Team not found", decode(t, w)["message"])
		assert.Empty(t, rec.errs)
	})

	t.Run("other errors are recorded and hidden", func(t *testing.T) {
		rec := &errorRecorder{}
		h := NewBaseHandler(rec)
		engine := newEngine(nil)
		engine.GET("/things/:id", func(c *gin.Context) {
			h.HandleError(c, errors.New("connection reset"))
		})

		w := perform(engine, http.MethodGet, "/things/1", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decode(t, w)["message"])
		require.Len(t, rec.sources, 1)
		assert.Equal(t, "GET /things/:id", rec.sources[0])
	})

	t.Run("nil recorder only logs", func(t *testing.T) {
		h := NewBaseHandler(nil)
		engine := newEngine(nil)
		engine.GET("/x", func(c *gin.Context) {
			h.HandleError(c, errors.New("boom"))
		})
		assert.Equal(t, http.StatusInternalServerError, perform(engine, http.MethodGet, "/x", nil).Code)
	})
}

func TestBaseHandler_QueryHelpers(t *testing.T) {
	h := NewBaseHandler(nil)
	engine := newEngine(nil)
	engine.GET("/p/:id", func(c *gin.Context) {
		if _, ok := h.pathID(c, "id", "location"); !ok {
			return
		}
		page, ok := h.page(c)
		if !ok {
			return
		}
		price, ok := h.optionalDecimal(c, "price")
		if !ok {
			return
		}
		resp := gin.H{"page": page.Page, "limit": page.Limit}
		if price != nil {
			resp["price"] = price.String()
		}
		c.JSON(http.StatusOK, resp)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/p/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid location id: abc", decode(t, w)["message"])
	})

	t.Run("defaults", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/p/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.EqualValues(t, 0, body["page"])
		assert.EqualValues(t, shared.DefaultPageLimit, body["limit"])
	})

	t.Run("limit over the cap is rejected", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/p/"+uuid.NewString()+"?limit=500", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("decimal filter", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/p/"+uuid.NewString()+"?price=9.50", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "9.5", decode(t, w)["price"])

		w = perform(engine, http.MethodGet, "/p/"+uuid.NewString()+"?price=cheap", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{"database": pinger{}, "cache": pinger{}})
		engine := gin.New()
		engine.GET("/health", h.Check)

		w := perform(engine, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, map[string]any{"database": "ok", "cache": "ok"}, body["checks"])
	})

	t.Run("one failing dependency", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{"database": pinger{err: errors.New("down")}, "cache": pinger{}})
		engine := gin.New()
		engine.GET("/health", h.Check)

		w := perform(engine, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "error", body["checks"].(map[string]any)["database"])
	})
}
