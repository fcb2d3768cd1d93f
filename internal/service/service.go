// Package service holds the explorer's read logic.
//
// Services sit between handlers and repositories. They resolve snapshot
// terms, read through the Redis cache and shape paged results. Storage
// errors are returned as-is for the global error handler to translate.
package service

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Cache is the JSON key-value store in front of the repositories.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Enqueuer schedules background tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// readThrough returns the cached value at key, or loads and caches it. Cache
// failures are logged and never fail the lookup. The bool reports a hit.
func readThrough[T any](
	ctx context.Context,
	c Cache,
	logger *zerolog.Logger,
	key string,
	ttl time.Duration,
	load func(context.Context) (*T, error),
) (*T, bool, error) {
	logger = requestLogger(ctx, logger)

	var cached T
	hit, err := c.Get(ctx, key, &cached)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to database")
	case hit:
		return &cached, true, nil
	}

	value, err := load(ctx)
	if err != nil {
		return nil, false, err
	}

	if ttl > 0 {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return value, false, nil
}

// requestLogger prefers the request-scoped logger carried by ctx.
func requestLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
