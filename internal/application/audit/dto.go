package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
)

// LogResponse represents a general log line in API responses
type LogResponse struct {
	ID        uuid.UUID      `json:"id"`
	Level     audit.Level    `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// HistoryResponse represents a user history entry in API responses
type HistoryResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"userId"`
	Action      audit.Action   `json:"action"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// HistoryQuery is the query of a user history listing. Dates are inclusive.
type HistoryQuery struct {
	UserID    *uuid.UUID
	Action    string
	StartDate time.Time
	EndDate   time.Time
}

// DailyLogins is the LOGIN count of one UTC day
type DailyLogins struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func toLogResponse(l *audit.Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		Level:     l.Level,
		Source:    l.Source,
		Message:   l.Message,
		Context:   l.Context,
		CreatedAt: l.CreatedAt,
	}
}

func toHistoryResponse(h *audit.UserHistory) HistoryResponse {
	return HistoryResponse{
		ID:          h.ID,
		UserID:      h.UserID,
		Action:      h.Action,
		Description: h.Description,
		Details:     h.Data,
		CreatedAt:   h.CreatedAt,
	}
}
