package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockJobRepository is a mock implementation of job.Repository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Enqueue(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByStatus(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) Transition(ctx context.Context, j *job.Job, from job.Status) (bool, error) {
	args := m.Called(ctx, j, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context, status *job.Status, offset, limit int) ([]job.Job, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountByStatus(ctx context.Context) (map[job.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[job.Status]int64), args.Error(1)
}

func newFailedJob(t *testing.T) *job.Job {
	t.Helper()
	j, err := job.NewLoginEmail("ada@example.com", "tok-1234567890")
	require.NoError(t, err)
	j.Fail("Invalid payload")
	return j
}

func TestAdminService_List(t *testing.T) {
	ctx := context.Background()
	page := shared.NewPageRequest(1, 2)

	t.Run("filters by status", func(t *testing.T) {
		repo := new(MockJobRepository)
		failed := job.StatusFailed
		repo.On("List", ctx, &failed, 2, 2).Return([]job.Job{*newFailedJob(t)}, nil)

		got, err := NewAdminService(repo, zap.NewNop()).List(ctx, "failed", page)
		require.NoError(t, err)
		assert.Len(t, got.Data, 1)
		assert.False(t, got.Next)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := NewAdminService(new(MockJobRepository), zap.NewNop()).List(ctx, "sleeping", page)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAdminService_Stats_FillsZeros(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepository)
	repo.On("CountByStatus", ctx).Return(map[job.Status]int64{job.StatusCompleted: 7}, nil)

	stats, err := NewAdminService(repo, zap.NewNop()).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[job.Status]int64{
		job.StatusPending:   0,
		job.StatusRunning:   0,
		job.StatusCompleted: 7,
		job.StatusFailed:    0,
		job.StatusRetry:     0,
	}, stats.Counts)
}

func TestAdminService_Requeue(t *testing.T) {
	ctx := context.Background()

	t.Run("failed job goes back to pending", func(t *testing.T) {
		j := newFailedJob(t)
		repo := new(MockJobRepository)
		repo.On("FindByID", ctx, j.ID).Return(j, nil)
		repo.On("Transition", ctx, j, job.StatusFailed).Return(true, nil)

		resp, err := NewAdminService(repo, zap.NewNop()).Requeue(ctx, j.ID)
		require.NoError(t, err)
		assert.Equal(t, job.StatusPending, resp.Status)
		assert.Zero(t, resp.FailureCount)
	})

	t.Run("other statuses are rejected", func(t *testing.T) {
		j, err := job.NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)
		repo := new(MockJobRepository)
		repo.On("FindByID", ctx, j.ID).Return(j, nil)

		_, err = NewAdminService(repo, zap.NewNop()).Requeue(ctx, j.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, MsgOnlyFailedRequeue, err.Error())
		repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race is rejected", func(t *testing.T) {
		j := newFailedJob(t)
		repo := new(MockJobRepository)
		repo.On("FindByID", ctx, j.ID).Return(j, nil)
		repo.On("Transition", ctx, j, job.StatusFailed).Return(false, nil)

		_, err := NewAdminService(repo, zap.NewNop()).Requeue(ctx, j.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown job", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockJobRepository)
		repo.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("Job"))

		_, err := NewAdminService(repo, zap.NewNop()).Requeue(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
