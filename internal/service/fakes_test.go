package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var errCacheDown = errors.New("cache down")

// memoryCache round-trips values through JSON like the Redis cache does.
type memoryCache struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if m.failGet {
		return false, errCacheDown
	}
	data, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.failSet {
		return errCacheDown
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	m.ttls[key] = ttl
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type fakeSnapshotRepo struct {
	byHash map[string]*model.Snapshot
	latest *model.Snapshot
	calls  int
}

func (f *fakeSnapshotRepo) GetSnapshotByHeight(_ context.Context, height int64) (*model.Snapshot, error) {
	f.calls++
	for _, s := range f.byHash {
		if s.Height == height {
			return s, nil
		}
	}
	return nil, sqlerr.WrapNotFound("snapshots", pgx.ErrNoRows)
}

func (f *fakeSnapshotRepo) GetSnapshotByHash(_ context.Context, hash string) (*model.Snapshot, error) {
	f.calls++
	if s, ok := f.byHash[hash]; ok {
		return s, nil
	}
	return nil, sqlerr.WrapNotFound("snapshots", pgx.ErrNoRows)
}

func (f *fakeSnapshotRepo) GetLatestSnapshot(context.Context) (*model.Snapshot, error) {
	f.calls++
	if f.latest == nil {
		return nil, sqlerr.WrapNotFound("snapshots", pgx.ErrNoRows)
	}
	return f.latest, nil
}

type fakeBlockRepo struct {
	blocks map[string]*model.Block
	calls  int
}

func (f *fakeBlockRepo) GetBlockByHash(_ context.Context, hash string) (*model.Block, error) {
	f.calls++
	if b, ok := f.blocks[hash]; ok {
		return b, nil
	}
	return nil, sqlerr.WrapNotFound("blocks", pgx.ErrNoRows)
}

type fakeTransactionRepo struct {
	txs        map[string]*model.Transaction
	page       []model.Transaction
	lastFilter repository.TransactionFilter
	lastPage   repository.PageQuery
	calls      int
}

func (f *fakeTransactionRepo) GetTransactionByHash(_ context.Context, hash string) (*model.Transaction, error) {
	f.calls++
	if tx, ok := f.txs[hash]; ok {
		return tx, nil
	}
	return nil, sqlerr.WrapNotFound("transactions", pgx.ErrNoRows)
}

func (f *fakeTransactionRepo) ListTransactions(_ context.Context, filter repository.TransactionFilter, page repository.PageQuery) ([]model.Transaction, error) {
	f.calls++
	f.lastFilter = filter
	f.lastPage = page
	return f.page, nil
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
