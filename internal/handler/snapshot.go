package handler

import (
	"context"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
)

type SnapshotService interface {
	GetSnapshot(ctx context.Context, term string) (*model.Snapshot, error)
	ListSnapshotTransactions(ctx context.Context, term string, page validation.Pagination) (*model.Page[model.Transaction], error)
}

type SnapshotHandler struct {
	Handler
	snapshots SnapshotService
}

func NewSnapshotHandler(s *server.Server, snapshots SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		Handler:   NewHandler(s),
		snapshots: snapshots,
	}
}

// GetSnapshot serves GET /snapshots/:term.
func (h *SnapshotHandler) GetSnapshot(c echo.Context, event *validation.Event) (*model.Snapshot, error) {
	term, _ := event.PathParam(validation.ParamTerm)
	return h.snapshots.GetSnapshot(c.Request().Context(), term)
}

// ListSnapshotTransactions serves GET /snapshots/:term/transactions.
func (h *SnapshotHandler) ListSnapshotTransactions(c echo.Context, event *validation.Event) (*model.Page[model.Transaction], error) {
	page, err := parsePagination(event)
	if err != nil {
		return nil, err
	}

	term, _ := event.PathParam(validation.ParamTerm)
	return h.snapshots.ListSnapshotTransactions(c.Request().Context(), term, page)
}

// parsePagination turns pagination failures into 400s.
func parsePagination(event *validation.Event) (validation.Pagination, error) {
	page, err := validation.ParsePagination(event)
	if err != nil {
		return validation.Pagination{}, validation.ToHTTPError(err)
	}
	return page, nil
}
