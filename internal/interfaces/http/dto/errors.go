package dto

import (
	"errors"
	"net/http"

	"github.com/orgdesk/backend/internal/domain/shared"
)

// Error codes that only exist at the HTTP boundary
const (
	// ErrCodeBadRequest is used for malformed requests and binding failures
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when binding tags reject a request
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidation:       http.StatusBadRequest,
	shared.CodeInvalidInput: http.StatusBadRequest,
	// The API has no 422; an operation invalid for the current state is a bad request
	shared.CodeInvalidState: http.StatusBadRequest,

	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeForbidden:    http.StatusForbidden,

	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	shared.CodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MsgInternal is the only message a 500 ever carries
const MsgInternal = "Internal server error"

// FromError converts err into a status and response body.
// Anything that is not a domain error becomes a generic 500.
func FromError(err error, requestID string) (int, ErrorResponse) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return GetHTTPStatus(domainErr.Code), NewErrorResponse(domainErr.Code, domainErr.Message, requestID)
	}
	return http.StatusInternalServerError, NewErrorResponse(ErrCodeInternal, MsgInternal, requestID)
}
