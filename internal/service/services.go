package service

import (
	"github.com/deppfellow/block-explorer/internal/lib/job"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/server"
)

type Services struct {
	Snapshot    *SnapshotService
	Block       *BlockService
	Transaction *TransactionService
	Job         *job.JobService
}

// NewService builds the services and hands the job workers what they need
// to warm the cache.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cacheCfg := s.Config.Cache

	transactionService := NewTransactionService(repos.Transaction, s.Cache, cacheCfg.TTL, s.Logger)

	s.Job.InitHandlers(job.Dependencies{
		Snapshots: repos.Snapshot,
		Cache:     s.Cache,
		LatestTTL: cacheCfg.LatestTTL,
		TTL:       cacheCfg.TTL,
	})

	return &Services{
		Snapshot:    NewSnapshotService(repos.Snapshot, transactionService, s.Cache, s.Job.Client, cacheCfg, s.Logger),
		Block:       NewBlockService(repos.Block, s.Cache, cacheCfg.TTL, s.Logger),
		Transaction: transactionService,
		Job:         s.Job,
	}, nil
}
