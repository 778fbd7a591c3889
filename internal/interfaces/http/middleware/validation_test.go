package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"firstName" binding:"required,max=5"`
	Role  string `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

func bindRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/signup", func(c *gin.Context) {
		var body signupBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleBindError_ListsFields(t *testing.T) {
	w := postJSON(bindRouter(), `{"email":"nope","firstName":"Augusta","role":"ROOT"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MsgValidationFailed, resp.Message)

	messages := map[string]string{}
	for _, d := range resp.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email format", messages["email"])
	assert.Equal(t, "Must be at most 5 characters", messages["firstName"])
	assert.Equal(t, "Must be one of: ADMIN USER", messages["role"])
}

func TestHandleBindError_MalformedBody(t *testing.T) {
	w := postJSON(bindRouter(), `{"email":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Code)
	assert.Empty(t, resp.Details)
}

func TestHandleBindError_Valid(t *testing.T) {
	w := postJSON(bindRouter(), `{"email":"ada@example.com","firstName":"Ada"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
