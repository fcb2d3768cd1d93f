package service

import (
	"context"
	"time"

	"github.com/deppfellow/block-explorer/internal/cache"
	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/rs/zerolog"
)

type BlockRepository interface {
	GetBlockByHash(ctx context.Context, hash string) (*model.Block, error)
}

type BlockService struct {
	blocks BlockRepository
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewBlockService(blocks BlockRepository, c Cache, ttl time.Duration, logger *zerolog.Logger) *BlockService {
	return &BlockService{blocks: blocks, cache: c, ttl: ttl, logger: logger}
}

func (s *BlockService) GetBlock(ctx context.Context, hash string) (*model.Block, error) {
	block, _, err := readThrough(ctx, s.cache, s.logger, cache.BlockKey(hash), s.ttl,
		func(ctx context.Context) (*model.Block, error) {
			return s.blocks.GetBlockByHash(ctx, hash)
		})
	return block, err
}
