package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// HierarchyKeyPrefix prefixes the per-company org tree keys
const HierarchyKeyPrefix = "org-hierarchy:"

// HierarchyKey is the key the org tree of companyID is cached under
func HierarchyKey(companyID uuid.UUID) string {
	return HierarchyKeyPrefix + companyID.String()
}

// HierarchyCache holds the serialized org tree of each company for a fixed TTL
type HierarchyCache struct {
	store Store
	ttl   time.Duration
}

// NewHierarchyCache creates a hierarchy cache over store
func NewHierarchyCache(store Store, ttl time.Duration) *HierarchyCache {
	return &HierarchyCache{store: store, ttl: ttl}
}

// Get returns the cached tree of companyID; ok is false on a miss
func (c *HierarchyCache) Get(ctx context.Context, companyID uuid.UUID) (data []byte, ok bool, err error) {
	data, err = c.store.Get(ctx, HierarchyKey(companyID))
	if errors.Is(err, ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores the tree of companyID for the configured TTL
func (c *HierarchyCache) Set(ctx context.Context, companyID uuid.UUID, data []byte) error {
	return c.store.Set(ctx, HierarchyKey(companyID), data, c.ttl)
}

// Invalidate drops the cached tree of companyID
func (c *HierarchyCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	return c.store.Delete(ctx, HierarchyKey(companyID))
}
