package featureflag

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// FeatureFlagRepository persists feature flags
type FeatureFlagRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*FeatureFlag, error)
	FindAll(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) ([]FeatureFlag, error)
	Save(ctx context.Context, flag *FeatureFlag) error
}
