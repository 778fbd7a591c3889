package featureflag

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/featureflag"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FlagService handles feature flag management operations
type FlagService struct {
	flagRepo featureflag.FeatureFlagRepository
	logger   *zap.Logger
}

// NewFlagService creates a new flag service
func NewFlagService(flagRepo featureflag.FeatureFlagRepository, logger *zap.Logger) *FlagService {
	return &FlagService{flagRepo: flagRepo, logger: logger}
}

// List returns a page of flags, active or not
func (s *FlagService) List(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) (shared.Page[FlagResponse], error) {
	rows, err := s.flagRepo.FindAll(ctx, companyID, page)
	if err != nil {
		return shared.Page[FlagResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(f featureflag.FeatureFlag) FlagResponse {
		return ToFlagResponse(&f)
	}), nil
}

// Get returns one flag
func (s *FlagService) Get(ctx context.Context, companyID, id uuid.UUID) (*FlagResponse, error) {
	flag, err := s.flagRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToFlagResponse(flag)
	return &resp, nil
}

// Create adds a flag. Flags start active unless told otherwise.
func (s *FlagService) Create(ctx context.Context, companyID uuid.UUID, req FlagRequest) (*FlagResponse, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	flag, err := featureflag.NewFeatureFlag(companyID, req.Name, req.Description, active)
	if err != nil {
		return nil, err
	}
	if err := s.flagRepo.Save(ctx, flag); err != nil {
		s.logger.Error("Failed to create feature flag", zap.String("name", flag.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Feature flag created", zap.String("flag_id", flag.ID.String()), zap.String("name", flag.Name))
	resp := ToFlagResponse(flag)
	return &resp, nil
}

// Update replaces a flag's fields. An omitted isActive keeps the current state.
func (s *FlagService) Update(ctx context.Context, companyID, id uuid.UUID, req FlagRequest) (*FlagResponse, error) {
	flag, err := s.flagRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	active := flag.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := flag.Update(req.Name, req.Description, active); err != nil {
		return nil, err
	}
	if err := s.flagRepo.Save(ctx, flag); err != nil {
		return nil, err
	}

	s.logger.Info("Feature flag updated", zap.String("flag_id", flag.ID.String()), zap.Bool("active", flag.IsActive))
	resp := ToFlagResponse(flag)
	return &resp, nil
}

// Delete deactivates a flag; the row is kept
func (s *FlagService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	flag, err := s.flagRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	flag.Deactivate()
	if err := s.flagRepo.Save(ctx, flag); err != nil {
		return err
	}

	s.logger.Info("Feature flag deactivated", zap.String("flag_id", flag.ID.String()))
	return nil
}
