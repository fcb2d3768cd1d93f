package router

import (
	"net/http"
	"time"

	"github.com/deppfellow/block-explorer/internal/handler"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
)

// immutableMaxAge applies to blocks, transactions and snapshots addressed by
// hash, which never change once indexed.
const immutableMaxAge = time.Hour

func registerExplorerRoutes(r *echo.Echo, h *handler.Handlers) {
	snapshots := r.Group("/snapshots")
	snapshots.GET("/:term", handler.Handle(
		h.Snapshot.Handler,
		validation.ValidateSnapshotsEvent,
		h.Snapshot.GetSnapshot,
		http.StatusOK,
	))
	snapshots.GET("/:term/transactions", handler.Handle(
		h.Snapshot.Handler,
		validation.Chain(validation.ValidateSnapshotsEvent, validation.ExtractPagination),
		h.Snapshot.ListSnapshotTransactions,
		http.StatusOK,
	))

	r.GET("/blocks/:hash", handler.HandleImmutable(
		h.Block.Handler,
		validation.ValidateBlocksEvent,
		h.Block.GetBlock,
		http.StatusOK,
		immutableMaxAge,
	))

	transactions := r.Group("/transactions")
	transactions.GET("", handler.Handle(
		h.Transaction.Handler,
		validation.ExtractPagination,
		h.Transaction.ListTransactions,
		http.StatusOK,
	))
	transactions.GET("/:hash", handler.HandleImmutable(
		h.Transaction.Handler,
		validation.ValidateTransactionByHashEvent,
		h.Transaction.GetTransaction,
		http.StatusOK,
		immutableMaxAge,
	))

	r.GET("/addresses/:address/transactions", handler.Handle(
		h.Transaction.Handler,
		validation.ExtractPagination,
		h.Transaction.ListAddressTransactions,
		http.StatusOK,
	))
}
