package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/block-explorer/internal/model"
)

type BlockRepository struct {
	db Querier
}

func NewBlockRepository(db Querier) *BlockRepository {
	return &BlockRepository{db: db}
}

func (r *BlockRepository) GetBlockByHash(ctx context.Context, hash string) (*model.Block, error) {
	var b model.Block
	err := r.db.QueryRow(ctx, `
		SELECT hash, height, snapshot_hash, parent_hashes, timestamp
		FROM blocks
		WHERE hash = $1`, hash,
	).Scan(&b.Hash, &b.Height, &b.SnapshotHash, &b.ParentHashes, &b.Timestamp)
	if err != nil {
		return nil, notFound("blocks", fmt.Errorf("failed to get block %s: %w", hash, err))
	}
	return &b, nil
}
