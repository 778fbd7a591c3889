// Package job models queued units of asynchronous work and their status machine.
package job

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type tags what kind of work a job carries
type Type string

const (
	TypeEmail Type = "EMAIL"
)

// Status is the lifecycle state of a job
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRetry     Status = "RETRY"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusRetry:
		return true
	}
	return false
}

// Priorities used by enqueuers. Higher runs first.
const (
	PriorityLoginEmail = 500
)

// DefaultMaxFailures sends a job to FAILED on its second failure
const DefaultMaxFailures = 2

// Transition errors
var (
	ErrNotRunnable     = errors.New("job can only start from PENDING or RETRY")
	ErrNotRunning      = errors.New("job is not running")
	ErrNotRequeueable  = errors.New("only FAILED jobs can be requeued")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrUnknownJobType  = errors.New("unknown job type")
	ErrInvalidJobState = errors.New("invalid job state")
)

// Job is one queued unit of work
type Job struct {
	ID           uuid.UUID
	Type         Type
	Priority     int
	Status       Status
	Payload      json.RawMessage
	FailureCount int
	ErrorMessage string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a PENDING job with a JSON-encoded payload
func New(jobType Type, priority int, payload any) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Job{
		ID:        uuid.New(),
		Type:      jobType,
		Priority:  priority,
		Status:    StatusPending,
		Payload:   raw,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewLoginEmail creates the job that mails a one-time login link
func NewLoginEmail(toEmail, token string) (*Job, error) {
	return New(TypeEmail, PriorityLoginEmail, EmailPayload{ToEmail: toEmail, Token: token})
}

// MarkRunning moves a PENDING or RETRY job to RUNNING
func (j *Job) MarkRunning(now time.Time) error {
	if j.Status != StatusPending && j.Status != StatusRetry {
		return ErrNotRunnable
	}
	j.Status = StatusRunning
	j.StartedAt = &now
	j.UpdatedAt = now
	return nil
}

// MarkCompleted moves a RUNNING job to COMPLETED
func (j *Job) MarkCompleted(now time.Time) error {
	if j.Status != StatusRunning {
		return ErrNotRunning
	}
	j.Status = StatusCompleted
	j.CompletedAt = &now
	j.ErrorMessage = ""
	j.UpdatedAt = now
	return nil
}

// RecordFailure counts a failed attempt. The job goes to RETRY until
// maxFailures attempts have failed, then to FAILED.
func (j *Job) RecordFailure(message string, maxFailures int) {
	if maxFailures < 1 {
		maxFailures = 1
	}
	j.FailureCount++
	j.ErrorMessage = message
	j.UpdatedAt = time.Now()
	if j.FailureCount >= maxFailures {
		j.Status = StatusFailed
		return
	}
	j.Status = StatusRetry
}

// Fail moves the job straight to FAILED
func (j *Job) Fail(message string) {
	j.FailureCount++
	j.ErrorMessage = message
	j.Status = StatusFailed
	j.UpdatedAt = time.Now()
}

// Requeue resets a FAILED job so the pending schedule picks it up again
func (j *Job) Requeue() error {
	if j.Status != StatusFailed {
		return ErrNotRequeueable
	}
	j.Status = StatusPending
	j.FailureCount = 0
	j.ErrorMessage = ""
	j.StartedAt = nil
	j.UpdatedAt = time.Now()
	return nil
}

// IsTerminal reports whether the job will never run again on its own
func (j *Job) IsTerminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// EmailPayload is the body of an EMAIL job
type EmailPayload struct {
	ToEmail string `json:"toEmail"`
	Token   string `json:"token"`
}

// ParseEmailPayload decodes and shape-checks an EMAIL payload.
// Both fields must be non-empty strings.
func ParseEmailPayload(raw json.RawMessage) (EmailPayload, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return EmailPayload{}, ErrInvalidPayload
	}
	toEmail, ok1 := fields["toEmail"].(string)
	token, ok2 := fields["token"].(string)
	if !ok1 || !ok2 || strings.TrimSpace(toEmail) == "" || strings.TrimSpace(token) == "" {
		return EmailPayload{}, ErrInvalidPayload
	}
	return EmailPayload{ToEmail: toEmail, Token: token}, nil
}

// Repository persists jobs
type Repository interface {
	Enqueue(ctx context.Context, j *Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	// FindByStatus returns up to limit jobs in status, highest priority first then oldest
	FindByStatus(ctx context.Context, status Status, limit int) ([]*Job, error)
	// Transition writes j only if the stored row is still in status from.
	// It reports false when another writer got there first.
	Transition(ctx context.Context, j *Job, from Status) (bool, error)
	// List returns jobs newest first, reading limit+1 rows for paging
	List(ctx context.Context, status *Status, offset, limit int) ([]Job, error)
	DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
