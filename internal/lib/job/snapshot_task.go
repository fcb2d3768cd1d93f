package job

import (
	"time"

	"github.com/hibiken/asynq"
)

// TaskWarmLatestSnapshot refreshes the cached latest snapshot.
const TaskWarmLatestSnapshot = "cache:warm_latest_snapshot"

// WarmLatestSnapshotUniqueTTL stops a burst of cache misses from queueing
// more than one refresh.
const WarmLatestSnapshotUniqueTTL = 10 * time.Second

// NewWarmLatestSnapshotTask has no payload; the handler always reads the
// newest snapshot.
func NewWarmLatestSnapshotTask() *asynq.Task {
	return asynq.NewTask(
		TaskWarmLatestSnapshot,
		nil,
		asynq.MaxRetry(3),
		asynq.Queue(QueueCritical),
		asynq.Timeout(15*time.Second),
		asynq.Unique(WarmLatestSnapshotUniqueTTL),
	)
}
