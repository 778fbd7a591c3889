package featureflag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/featureflag"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockFeatureFlagRepository is a mock implementation of featureflag.FeatureFlagRepository
type MockFeatureFlagRepository struct {
	mock.Mock
}

func (m *MockFeatureFlagRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*featureflag.FeatureFlag, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*featureflag.FeatureFlag), args.Error(1)
}

func (m *MockFeatureFlagRepository) FindAll(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) ([]featureflag.FeatureFlag, error) {
	args := m.Called(ctx, companyID, page)
	return args.Get(0).([]featureflag.FeatureFlag), args.Error(1)
}

func (m *MockFeatureFlagRepository) Save(ctx context.Context, flag *featureflag.FeatureFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func TestFlagService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("defaults to active", func(t *testing.T) {
		repo := new(MockFeatureFlagRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*featureflag.FeatureFlag")).Return(nil)
		svc := NewFlagService(repo, zap.NewNop())

		resp, err := svc.Create(ctx, companyID, FlagRequest{Name: "new-checkout"})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "new-checkout", resp.Name)
	})

	t.Run("name is required", func(t *testing.T) {
		repo := new(MockFeatureFlagRepository)
		svc := NewFlagService(repo, zap.NewNop())

		_, err := svc.Create(ctx, companyID, FlagRequest{Name: " "})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestFlagService_Update_KeepsStateWhenOmitted(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	flag, err := featureflag.NewFeatureFlag(companyID, "beta", "", false)
	require.NoError(t, err)

	repo := new(MockFeatureFlagRepository)
	repo.On("FindByID", ctx, companyID, flag.ID).Return(flag, nil)
	repo.On("Save", ctx, flag).Return(nil)
	svc := NewFlagService(repo, zap.NewNop())

	resp, err := svc.Update(ctx, companyID, flag.ID, FlagRequest{Name: "beta-2", Description: "second wave"})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "second wave", resp.Description)
}

func TestFlagService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("deactivates instead of deleting", func(t *testing.T) {
		flag, err := featureflag.NewFeatureFlag(companyID, "beta", "", true)
		require.NoError(t, err)
		repo := new(MockFeatureFlagRepository)
		repo.On("FindByID", ctx, companyID, flag.ID).Return(flag, nil)
		repo.On("Save", ctx, flag).Return(nil)

		require.NoError(t, NewFlagService(repo, zap.NewNop()).Delete(ctx, companyID, flag.ID))
		assert.False(t, flag.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("unknown flag", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockFeatureFlagRepository)
		repo.On("FindByID", ctx, companyID, id).Return(nil, shared.NewNotFoundError("Feature flag"))

		err := NewFlagService(repo, zap.NewNop()).Delete(ctx, companyID, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestFlagService_List(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	page := shared.NewPageRequest(0, 1)
	a, _ := featureflag.NewFeatureFlag(companyID, "a", "", true)

	repo := new(MockFeatureFlagRepository)
	repo.On("FindAll", ctx, companyID, page).Return([]featureflag.FeatureFlag{*a}, nil)

	got, err := NewFlagService(repo, zap.NewNop()).List(ctx, companyID, page)
	require.NoError(t, err)
	assert.Len(t, got.Data, 1)
	assert.False(t, got.Next)
}
