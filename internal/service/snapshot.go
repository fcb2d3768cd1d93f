package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/deppfellow/block-explorer/internal/cache"
	"github.com/deppfellow/block-explorer/internal/config"
	"github.com/deppfellow/block-explorer/internal/errs"
	"github.com/deppfellow/block-explorer/internal/lib/job"
	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// LatestTerm selects the newest snapshot.
const LatestTerm = "latest"

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

type TermKind int

const (
	TermHash TermKind = iota
	TermHeight
	TermLatest
)

// SnapshotTerm is a parsed /snapshots/:term value.
type SnapshotTerm struct {
	Kind   TermKind
	Height int64
	Hash   string
}

// ParseTerm reads a term as a height when it is all digits, the latest
// snapshot when it is "latest", and a hash otherwise.
func ParseTerm(term string) (SnapshotTerm, error) {
	switch {
	case term == LatestTerm:
		return SnapshotTerm{Kind: TermLatest}, nil

	case digitsPattern.MatchString(term):
		height, err := strconv.ParseInt(term, 10, 64)
		if err != nil {
			return SnapshotTerm{}, errs.NewBadRequestError(
				"Snapshot height is out of range",
				true,
				nil,
				[]errs.FieldError{{Field: validation.ParamTerm, Error: "is out of range"}},
				nil,
			)
		}
		return SnapshotTerm{Kind: TermHeight, Height: height}, nil

	default:
		return SnapshotTerm{Kind: TermHash, Hash: term}, nil
	}
}

type SnapshotRepository interface {
	GetSnapshotByHeight(ctx context.Context, height int64) (*model.Snapshot, error)
	GetSnapshotByHash(ctx context.Context, hash string) (*model.Snapshot, error)
	GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error)
}

type SnapshotService struct {
	snapshots    SnapshotRepository
	transactions *TransactionService
	cache        Cache
	jobs         Enqueuer
	cfg          config.CacheConfig
	logger       *zerolog.Logger
}

func NewSnapshotService(
	snapshots SnapshotRepository,
	transactions *TransactionService,
	c Cache,
	jobs Enqueuer,
	cfg config.CacheConfig,
	logger *zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		snapshots:    snapshots,
		transactions: transactions,
		cache:        c,
		jobs:         jobs,
		cfg:          cfg,
		logger:       logger,
	}
}

// GetSnapshot resolves term to a snapshot.
func (s *SnapshotService) GetSnapshot(ctx context.Context, term string) (*model.Snapshot, error) {
	parsed, err := ParseTerm(term)
	if err != nil {
		return nil, err
	}

	switch parsed.Kind {
	case TermLatest:
		return s.getLatest(ctx)

	case TermHeight:
		snapshot, _, err := readThrough(ctx, s.cache, s.logger, cache.SnapshotHeightKey(parsed.Height), s.cfg.TTL,
			func(ctx context.Context) (*model.Snapshot, error) {
				return s.snapshots.GetSnapshotByHeight(ctx, parsed.Height)
			})
		return snapshot, err

	default:
		snapshot, _, err := readThrough(ctx, s.cache, s.logger, cache.SnapshotHashKey(parsed.Hash), s.cfg.TTL,
			func(ctx context.Context) (*model.Snapshot, error) {
				return s.snapshots.GetSnapshotByHash(ctx, parsed.Hash)
			})
		return snapshot, err
	}
}

// getLatest serves the cached latest snapshot. On a miss it reads the
// database and leaves refilling the cache to the warm-up task.
func (s *SnapshotService) getLatest(ctx context.Context) (*model.Snapshot, error) {
	snapshot, hit, err := readThrough(ctx, s.cache, s.logger, cache.LatestSnapshotKey, 0, s.snapshots.GetLatestSnapshot)
	if err != nil || hit {
		return snapshot, err
	}

	logger := requestLogger(ctx, s.logger)

	_, err = s.jobs.EnqueueContext(ctx, job.NewWarmLatestSnapshotTask())
	switch {
	case err == nil, errors.Is(err, asynq.ErrDuplicateTask):
	default:
		// No worker will fill the key, so store this read ourselves.
		logger.Warn().Err(err).Msg("failed to enqueue latest snapshot warm-up, caching inline")
		if err := s.cache.Set(ctx, cache.LatestSnapshotKey, snapshot, s.cfg.LatestTTL); err != nil {
			logger.Warn().Err(err).Str("key", cache.LatestSnapshotKey).Msg("cache write failed")
		}
	}

	return snapshot, nil
}

// ListSnapshotTransactions pages through the transactions of the snapshot
// named by term.
func (s *SnapshotService) ListSnapshotTransactions(ctx context.Context, term string, page validation.Pagination) (*model.Page[model.Transaction], error) {
	snapshot, err := s.GetSnapshot(ctx, term)
	if err != nil {
		return nil, err
	}

	return s.transactions.ListTransactions(ctx, repository.TransactionFilter{SnapshotHash: snapshot.Hash}, page)
}
