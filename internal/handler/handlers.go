package handler

import (
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/service"
)

type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Snapshot    *SnapshotHandler
	Block       *BlockHandler
	Transaction *TransactionHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		OpenAPI:     NewOpenAPIHandler(s),
		Snapshot:    NewSnapshotHandler(s, services.Snapshot),
		Block:       NewBlockHandler(s, services.Block),
		Transaction: NewTransactionHandler(s, services.Transaction),
	}
}
