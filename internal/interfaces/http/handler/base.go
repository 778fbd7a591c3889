// Package handler holds the gin handlers of the REST API.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrorRecorder persists server-side failures for the admin log view
type ErrorRecorder interface {
	RecordError(ctx context.Context, source string, err error, fields map[string]any)
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	errors ErrorRecorder
}

// NewBaseHandler creates a BaseHandler. A nil recorder only logs failures.
func NewBaseHandler(recorder ErrorRecorder) BaseHandler {
	return BaseHandler{errors: recorder}
}

// OK sends a 200 response with data
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message sends a 200 {message} response
func (h *BaseHandler) Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessage(message))
}

// Created sends the 201 "<resource> <id> created successfully" response
func (h *BaseHandler) Created(c *gin.Context, resource string, id uuid.UUID) {
	c.JSON(http.StatusCreated, dto.NewMessage(fmt.Sprintf("%s %s created successfully", resource, id)))
}

// Updated sends the 200 "<resource> <id> updated successfully" response
func (h *BaseHandler) Updated(c *gin.Context, resource string, id uuid.UUID) {
	h.Message(c, fmt.Sprintf("%s %s updated successfully", resource, id))
}

// Deleted sends the 200 "<resource> <id> deleted successfully" response
func (h *BaseHandler) Deleted(c *gin.Context, resource string, id uuid.UUID) {
	h.Message(c, fmt.Sprintf("%s %s deleted successfully", resource, id))
}

// CountResult sends a {count} response
func (h *BaseHandler) CountResult(c *gin.Context, n int64) {
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// HandleError converts err to a response. Domain errors keep their status and
// message; anything else is logged, recorded as an ERROR log row and answered
// with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		ctx := c.Request.Context()
		logger.L(ctx).Error("Request failed", zap.Error(err))
		if h.errors != nil {
			h.errors.RecordError(ctx, c.Request.Method+" "+c.FullPath(), err, map[string]any{
				"requestId": middleware.GetRequestID(c),
				"path":      c.Request.URL.Path,
			})
		}
	}

	status, body := dto.FromError(err, middleware.GetRequestID(c))
	c.JSON(status, body)
}

// bind decodes the JSON body into req and answers 400 on failure
func (h *BaseHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleBindError(c, err)
		return false
	}
	return true
}

// bindQuery decodes the query string into req and answers 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleBindError(c, err)
		return false
	}
	return true
}

// pathID parses the path parameter param, answering 400 "Invalid <resource> id: <raw>" on failure
func (h *BaseHandler) pathID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.HandleError(c, shared.NewInvalidIDError(resource, raw))
		return uuid.Nil, false
	}
	return id, true
}

// page reads ?page&limit
func (h *BaseHandler) page(c *gin.Context) (shared.PageRequest, bool) {
	var q dto.PageQuery
	if !h.bindQuery(c, &q) {
		return shared.PageRequest{}, false
	}
	return shared.NewPageRequest(q.Page, q.Limit), true
}

// skipTake reads ?skip&take
func (h *BaseHandler) skipTake(c *gin.Context) (shared.PageRequest, bool) {
	var q dto.SkipTakeQuery
	if !h.bindQuery(c, &q) {
		return shared.PageRequest{}, false
	}
	return shared.SkipTake(q.Skip, q.Take), true
}

// optionalUUID parses an optional query value, answering 400 when it is present but malformed
func (h *BaseHandler) optionalUUID(c *gin.Context, key, resource string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.HandleError(c, shared.NewInvalidIDError(resource, raw))
		return nil, false
	}
	return &id, true
}

// optionalDecimal parses an optional numeric query value
func (h *BaseHandler) optionalDecimal(c *gin.Context, key string) (*decimal.Decimal, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		h.HandleError(c, shared.NewValidationError(fmt.Sprintf("Invalid %s: %s", key, raw)))
		return nil, false
	}
	return &d, true
}
