// Package job exposes the job queue to administrators: listing, counts and requeueing dead jobs.
package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MsgOnlyFailedRequeue is returned when requeueing a job that is not FAILED
const MsgOnlyFailedRequeue = "Only failed jobs can be requeued"

var allStatuses = []job.Status{
	job.StatusPending,
	job.StatusRunning,
	job.StatusCompleted,
	job.StatusFailed,
	job.StatusRetry,
}

// AdminService manages queued jobs on behalf of administrators
type AdminService struct {
	repo   job.Repository
	logger *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(repo job.Repository, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

// List returns jobs newest first, optionally restricted to one status
func (s *AdminService) List(ctx context.Context, rawStatus string, page shared.PageRequest) (shared.Page[JobResponse], error) {
	var status *job.Status
	if rawStatus = strings.TrimSpace(rawStatus); rawStatus != "" {
		st := job.Status(strings.ToUpper(rawStatus))
		if !st.IsValid() {
			return shared.Page[JobResponse]{}, shared.NewValidationError("Invalid job status: " + rawStatus)
		}
		status = &st
	}

	rows, err := s.repo.List(ctx, status, page.Offset(), page.Limit)
	if err != nil {
		return shared.Page[JobResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(j job.Job) JobResponse {
		return ToJobResponse(&j)
	}), nil
}

// Stats counts jobs per status, reporting zero for statuses without rows
func (s *AdminService) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[job.Status]int64, len(allStatuses))
	for _, st := range allStatuses {
		out[st] = counts[st]
	}
	return &StatsResponse{Counts: out}, nil
}

// Get returns one job
func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJobResponse(j)
	return &resp, nil
}

// Requeue moves a FAILED job back to PENDING with a cleared failure count
func (s *AdminService) Requeue(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := j.Requeue(); err != nil {
		if errors.Is(err, job.ErrNotRequeueable) {
			return nil, shared.NewValidationError(MsgOnlyFailedRequeue)
		}
		return nil, err
	}

	ok, err := s.repo.Transition(ctx, j, job.StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to requeue job: %w", err)
	}
	if !ok {
		return nil, shared.NewValidationError(MsgOnlyFailedRequeue)
	}

	s.logger.Info("Job requeued", zap.String("job_id", j.ID.String()), zap.String("type", string(j.Type)))
	resp := ToJobResponse(j)
	return &resp, nil
}
