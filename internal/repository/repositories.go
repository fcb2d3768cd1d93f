package repository

import (
	"github.com/deppfellow/block-explorer/internal/server"
)

type Repositories struct {
	Snapshot    *SnapshotRepository
	Block       *BlockRepository
	Transaction *TransactionRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Snapshot:    NewSnapshotRepository(s.DB.Pool),
		Block:       NewBlockRepository(s.DB.Pool),
		Transaction: NewTransactionRepository(s.DB.Pool),
	}
}
