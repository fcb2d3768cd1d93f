package handler

import (
	"context"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
)

type TransactionService interface {
	GetTransaction(ctx context.Context, hash string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter repository.TransactionFilter, page validation.Pagination) (*model.Page[model.Transaction], error)
	ListAddressTransactions(ctx context.Context, address string, page validation.Pagination) (*model.Page[model.Transaction], error)
}

type TransactionHandler struct {
	Handler
	transactions TransactionService
}

func NewTransactionHandler(s *server.Server, transactions TransactionService) *TransactionHandler {
	return &TransactionHandler{
		Handler:      NewHandler(s),
		transactions: transactions,
	}
}

// GetTransaction serves GET /transactions/:hash. Pagination parameters are
// accepted and ignored.
func (h *TransactionHandler) GetTransaction(c echo.Context, event *validation.Event) (*model.Transaction, error) {
	hash, _ := event.PathParam(validation.ParamHash)
	return h.transactions.GetTransaction(c.Request().Context(), hash)
}

// ListTransactions serves GET /transactions.
func (h *TransactionHandler) ListTransactions(c echo.Context, event *validation.Event) (*model.Page[model.Transaction], error) {
	page, err := parsePagination(event)
	if err != nil {
		return nil, err
	}
	return h.transactions.ListTransactions(c.Request().Context(), repository.TransactionFilter{}, page)
}

// ListAddressTransactions serves GET /addresses/:address/transactions.
func (h *TransactionHandler) ListAddressTransactions(c echo.Context, event *validation.Event) (*model.Page[model.Transaction], error) {
	page, err := parsePagination(event)
	if err != nil {
		return nil, err
	}

	address, _ := event.PathParam(validation.ParamAddress)
	return h.transactions.ListAddressTransactions(c.Request().Context(), address, page)
}
