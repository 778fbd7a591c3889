package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/job"
)

// JobResponse represents a job in API responses
type JobResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         job.Type        `json:"type"`
	Priority     int             `json:"priority"`
	Status       job.Status      `json:"status"`
	Payload      json.RawMessage `json:"payload"`
	FailureCount int             `json:"failureCount"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// StatsResponse counts jobs per status; every status is present
type StatsResponse struct {
	Counts map[job.Status]int64 `json:"counts"`
}

// ToJobResponse converts a domain job
func ToJobResponse(j *job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Type:         j.Type,
		Priority:     j.Priority,
		Status:       j.Status,
		Payload:      j.Payload,
		FailureCount: j.FailureCount,
		ErrorMessage: j.ErrorMessage,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
