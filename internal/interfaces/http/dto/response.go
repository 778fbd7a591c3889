package dto

// MessageResponse is the body of create, update and delete responses
type MessageResponse struct {
	Message string `json:"message" example:"User 5b6c6a02-79a5-4a8c-9c3e-1b2f1d0e7c11 created successfully"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Message   string             `json:"message" example:"User not found"`
	Code      string             `json:"code,omitempty" example:"NOT_FOUND"`
	RequestID string             `json:"requestId,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CountResponse is the body of count endpoints
type CountResponse struct {
	Count int64 `json:"count"`
}

// NewMessage creates a message response
func NewMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Message: message, Code: code, RequestID: requestID}
}

// NewValidationErrorResponse creates a 400 body listing the rejected fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Code:      ErrCodeValidation,
		RequestID: requestID,
		Details:   details,
	}
}

// PageQuery is the page/limit window of paginated listings
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SkipTakeQuery is the raw row window used by the commerce listings
type SkipTakeQuery struct {
	Skip int `form:"skip" binding:"omitempty,min=0"`
	Take int `form:"take" binding:"omitempty,min=1,max=100"`
}
