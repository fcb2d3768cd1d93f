package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/jackc/pgx/v5"
)

const snapshotColumns = `hash, height, ordinal, subheight, last_snapshot_hash, timestamp`

type SnapshotRepository struct {
	db Querier
}

func NewSnapshotRepository(db Querier) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) GetSnapshotByHeight(ctx context.Context, height int64) (*model.Snapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE height = $1`, height)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound("snapshots", fmt.Errorf("failed to get snapshot at height %d: %w", height, err))
	}
	return snapshot, nil
}

func (r *SnapshotRepository) GetSnapshotByHash(ctx context.Context, hash string) (*model.Snapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE hash = $1`, hash)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound("snapshots", fmt.Errorf("failed to get snapshot %s: %w", hash, err))
	}
	return snapshot, nil
}

// GetLatestSnapshot returns the snapshot with the greatest height.
func (r *SnapshotRepository) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY height DESC LIMIT 1`)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound("snapshots", fmt.Errorf("failed to get latest snapshot: %w", err))
	}
	return snapshot, nil
}

func scanSnapshot(row pgx.Row) (*model.Snapshot, error) {
	var s model.Snapshot
	if err := row.Scan(&s.Hash, &s.Height, &s.Ordinal, &s.SubHeight, &s.LastSnapshotHash, &s.Timestamp); err != nil {
		return nil, err
	}
	return &s, nil
}
