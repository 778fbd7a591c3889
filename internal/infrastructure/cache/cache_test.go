package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newClockedStore returns a store whose clock the test controls
func newClockedStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStore_GetSet(t *testing.T) {
	s, now := newClockedStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	*now = now.Add(time.Minute)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "forever", []byte("x"), 0))
	*now = now.Add(24 * time.Hour)
	_, err = s.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryStore_SetNX(t *testing.T) {
	s, now := newClockedStore(t)
	ctx := context.Background()

	ok, err := s.SetNX(ctx, "k", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX(ctx, "k", []byte("2"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	*now = now.Add(2 * time.Minute)
	ok, err = s.SetNX(ctx, "k", []byte("3"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	s, now := newClockedStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, s.Set(ctx, "long", []byte("b"), time.Hour))
	*now = now.Add(time.Minute)

	s.cleanup()
	assert.Equal(t, 1, s.Size())
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestLoginThrottle(t *testing.T) {
	s, now := newClockedStore(t)
	throttle := NewLoginThrottle(s, 2*time.Minute)
	ctx := context.Background()

	ok, err := throttle.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = throttle.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "second request inside the window is throttled")

	ok, err = throttle.Allow(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "emails are throttled independently")

	*now = now.Add(2 * time.Minute)
	ok, err = throttle.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Get(ctx, "login:ada@example.com")
	assert.NoError(t, err)

	require.NoError(t, throttle.Release(ctx, "ada@example.com"))
	ok, err = throttle.Allow(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "a released claim can be taken again inside the window")
}

func TestHierarchyCache(t *testing.T) {
	s, now := newClockedStore(t)
	c := NewHierarchyCache(s, 10*time.Minute)
	ctx := context.Background()
	companyID := uuid.New()

	_, ok, err := c.Get(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, companyID, []byte(`[{"id":"1"}]`)))
	data, ok, err := c.Get(ctx, companyID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	require.NoError(t, c.Invalidate(ctx, companyID))
	_, ok, err = c.Get(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, companyID, []byte(`[]`)))
	*now = now.Add(10 * time.Minute)
	_, ok, err = c.Get(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, ok, "expires after the ttl")
}

func TestHierarchyCache_KeyedByCompany(t *testing.T) {
	s, _ := newClockedStore(t)
	c := NewHierarchyCache(s, 10*time.Minute)
	ctx := context.Background()
	companyA, companyB := uuid.New(), uuid.New()

	require.NoError(t, c.Set(ctx, companyA, []byte(`[{"email":"a@a.com"}]`)))

	_, ok, err := c.Get(ctx, companyB)
	require.NoError(t, err)
	assert.False(t, ok, "another company's tree is never served")

	require.NoError(t, c.Set(ctx, companyB, []byte(`[]`)))
	require.NoError(t, c.Invalidate(ctx, companyB))

	data, ok, err := c.Get(ctx, companyA)
	require.NoError(t, err)
	assert.True(t, ok, "invalidation only drops its own company")
	assert.JSONEq(t, `[{"email":"a@a.com"}]`, string(data))
	assert.Equal(t, "org-hierarchy:"+companyA.String(), HierarchyKey(companyA))
}

func TestNewStore_Fallback(t *testing.T) {
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("fails without fallback", func(t *testing.T) {
		_, err := NewStore(unreachable)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required but unavailable")
	})

	t.Run("falls back to memory and warns", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		store, err := NewStore(unreachable, WithInMemoryFallback(true), WithLogger(zap.New(core)))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		assert.IsType(t, &MemoryStore{}, store)
		assert.Equal(t, 1, recorded.Len())
	})
}
