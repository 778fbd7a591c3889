package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/job"
)

// LoginThrottle limits how often a login email can be requested
type LoginThrottle interface {
	// Allow claims the throttle window for email; false means a claim is still live
	Allow(ctx context.Context, email string) (bool, error)
	// Release gives up a claim whose login email was never queued
	Release(ctx context.Context, email string) error
	Window() time.Duration
}

// HierarchyCache stores the serialized org tree of each company
type HierarchyCache interface {
	Get(ctx context.Context, companyID uuid.UUID) ([]byte, bool, error)
	Set(ctx context.Context, companyID uuid.UUID, data []byte) error
	Invalidate(ctx context.Context, companyID uuid.UUID) error
}

// JobEnqueuer queues background work
type JobEnqueuer interface {
	Enqueue(ctx context.Context, j *job.Job) error
}

// HistoryWriter appends to the per-user history trail
type HistoryWriter interface {
	SaveHistory(ctx context.Context, entry *audit.UserHistory) error
}

// ObjectStorageService issues presigned upload URLs
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(storageKey string) string
}
