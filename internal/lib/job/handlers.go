package job

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/block-explorer/internal/cache"
	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/hibiken/asynq"
)

// LatestSnapshotLoader reads the newest snapshot from storage.
type LatestSnapshotLoader interface {
	GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// CacheWriter stores and drops JSON values.
type CacheWriter interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Dependencies are the collaborators task handlers need. They are built after
// the job service, so they are attached with InitHandlers.
type Dependencies struct {
	Snapshots LatestSnapshotLoader
	Cache     CacheWriter
	LatestTTL time.Duration
	TTL       time.Duration
}

func (j *JobService) InitHandlers(deps Dependencies) {
	j.deps = &deps
}

func (j *JobService) handleWarmLatestSnapshotTask(ctx context.Context, t *asynq.Task) error {
	if j.deps == nil {
		return fmt.Errorf("job handlers not initialised: %w", asynq.SkipRetry)
	}

	snapshot, err := j.deps.Snapshots.GetLatestSnapshot(ctx)
	if err != nil {
		j.logger.Error().
			Str("type", t.Type()).
			Err(err).
			Msg("failed to load latest snapshot")

		// Whatever an inline write left under the key may already be behind;
		// drop it so readers go to the database until a retry succeeds.
		if delErr := j.deps.Cache.Delete(ctx, cache.LatestSnapshotKey); delErr != nil {
			j.logger.Warn().Err(delErr).Str("key", cache.LatestSnapshotKey).Msg("failed to drop latest snapshot key")
		}
		return err
	}

	if err := j.deps.Cache.Set(ctx, cache.LatestSnapshotKey, snapshot, j.deps.LatestTTL); err != nil {
		return err
	}

	// A snapshot never changes once written, so its height and hash keys
	// can be filled at the same time.
	if err := j.deps.Cache.Set(ctx, cache.SnapshotHeightKey(snapshot.Height), snapshot, j.deps.TTL); err != nil {
		return err
	}
	if err := j.deps.Cache.Set(ctx, cache.SnapshotHashKey(snapshot.Hash), snapshot, j.deps.TTL); err != nil {
		return err
	}

	j.logger.Debug().
		Str("type", t.Type()).
		Int64("height", snapshot.Height).
		Msg("warmed latest snapshot cache")

	return nil
}
