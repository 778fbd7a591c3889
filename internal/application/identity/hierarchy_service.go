package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HierarchyService builds the org tree from reporting lines and caches it
type HierarchyService struct {
	users  identity.UserRepository
	cache  HierarchyCache
	logger *zap.Logger
	title  cases.Caser
}

// NewHierarchyService creates a new HierarchyService
func NewHierarchyService(users identity.UserRepository, cache HierarchyCache, logger *zap.Logger) *HierarchyService {
	return &HierarchyService{
		users:  users,
		cache:  cache,
		logger: logger,
		title:  cases.Title(language.Und),
	}
}

// Tree returns the org tree of companyID, from cache while the entry is live.
// Roots are the live users without a manager.
func (s *HierarchyService) Tree(ctx context.Context, companyID uuid.UUID) ([]HierarchyNode, error) {
	if data, ok, err := s.cache.Get(ctx, companyID); err != nil {
		s.logger.Warn("Hierarchy cache read failed", zap.Error(err))
	} else if ok {
		var tree []HierarchyNode
		if err := json.Unmarshal(data, &tree); err == nil {
			return tree, nil
		}
		s.logger.Warn("Discarding undecodable hierarchy cache entry")
	}

	tree, err := s.build(ctx, companyID, nil, map[uuid.UUID]bool{})
	if err != nil {
		return nil, fmt.Errorf("failed to build org hierarchy: %w", err)
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode org hierarchy: %w", err)
	}
	if err := s.cache.Set(ctx, companyID, data); err != nil {
		s.logger.Warn("Hierarchy cache write failed", zap.Error(err))
	}
	return tree, nil
}

// Invalidate drops the cached tree of companyID. Failures are logged, the next read rebuilds after the TTL at worst.
func (s *HierarchyService) Invalidate(ctx context.Context, companyID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.logger.Warn("Hierarchy cache invalidation failed", zap.String("company_id", companyID.String()), zap.Error(err))
	}
}

func (s *HierarchyService) build(ctx context.Context, companyID uuid.UUID, managerID *uuid.UUID, seen map[uuid.UUID]bool) ([]HierarchyNode, error) {
	reports, err := s.users.FindDirectReports(ctx, companyID, managerID)
	if err != nil {
		return nil, err
	}

	nodes := make([]HierarchyNode, 0, len(reports))
	for i := range reports {
		u := &reports[i]
		// reporting cycles are cut at the second visit
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true

		children, err := s.build(ctx, companyID, &u.ID, seen)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, HierarchyNode{
			ID:           u.ID,
			Name:         s.title.String(u.FullName()),
			Email:        u.Email,
			Role:         u.Role,
			Title:        u.Profile.Title,
			Image:        u.Profile.ProfileImage,
			Subordinates: children,
		})
	}
	return nodes, nil
}
