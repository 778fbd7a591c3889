package cache

import (
	"fmt"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// FactoryOption configures NewStore
type FactoryOption func(*factory)

type factory struct {
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// WithLogger sets the logger used to report the chosen backend
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to process memory.
// Default is false.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStore connects to Redis, falling back to a MemoryStore when allowed
func NewStore(cfg config.RedisConfig, opts ...FactoryOption) (Store, error) {
	f := &factory{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}

	client, err := NewRedisClient(cfg)
	if err == nil {
		f.logger.Info("using Redis cache store", zap.String("addr", client.Options().Addr))
		return NewRedisStore(client), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache store. "+
		"Login throttling and the hierarchy cache are not shared across instances.",
		zap.Error(err),
	)
	return NewMemoryStore(), nil
}
