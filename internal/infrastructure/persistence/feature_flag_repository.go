package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/featureflag"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFeatureFlagRepository implements featureflag.FeatureFlagRepository
type GormFeatureFlagRepository struct {
	read  *gorm.DB
	write *gorm.DB
}

// NewGormFeatureFlagRepository creates a new GormFeatureFlagRepository
func NewGormFeatureFlagRepository(read, write *gorm.DB) *GormFeatureFlagRepository {
	return &GormFeatureFlagRepository{read: read, write: write}
}

// FindByID finds a feature flag by its ID
func (r *GormFeatureFlagRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*featureflag.FeatureFlag, error) {
	var model models.FeatureFlagModel
	err := r.read.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, notFound(err, "Feature flag")
	}
	return model.ToDomain(), nil
}

// FindAll lists flags ordered by name, active and inactive alike
func (r *GormFeatureFlagRepository) FindAll(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) ([]featureflag.FeatureFlag, error) {
	var rows []models.FeatureFlagModel
	err := r.read.WithContext(ctx).
		Scopes(CompanyScope(companyID), Paginate(page)).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	flags := make([]featureflag.FeatureFlag, len(rows))
	for i := range rows {
		flags[i] = *rows[i].ToDomain()
	}
	return flags, nil
}

// Save inserts or updates a flag
func (r *GormFeatureFlagRepository) Save(ctx context.Context, flag *featureflag.FeatureFlag) error {
	return r.write.WithContext(ctx).Save(models.FeatureFlagModelFromDomain(flag)).Error
}
