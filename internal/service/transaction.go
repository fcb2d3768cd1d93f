package service

import (
	"context"
	"time"

	"github.com/deppfellow/block-explorer/internal/cache"
	"github.com/deppfellow/block-explorer/internal/cursor"
	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/rs/zerolog"
)

type TransactionRepository interface {
	GetTransactionByHash(ctx context.Context, hash string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter repository.TransactionFilter, page repository.PageQuery) ([]model.Transaction, error)
}

type TransactionService struct {
	transactions TransactionRepository
	cache        Cache
	ttl          time.Duration
	logger       *zerolog.Logger
}

func NewTransactionService(transactions TransactionRepository, c Cache, ttl time.Duration, logger *zerolog.Logger) *TransactionService {
	return &TransactionService{transactions: transactions, cache: c, ttl: ttl, logger: logger}
}

func (s *TransactionService) GetTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	tx, _, err := readThrough(ctx, s.cache, s.logger, cache.TransactionKey(hash), s.ttl,
		func(ctx context.Context) (*model.Transaction, error) {
			return s.transactions.GetTransactionByHash(ctx, hash)
		})
	return tx, err
}

// ListTransactions returns one page of transactions matching filter, newest
// first. Pages are not cached since new transactions keep arriving.
func (s *TransactionService) ListTransactions(ctx context.Context, filter repository.TransactionFilter, page validation.Pagination) (*model.Page[model.Transaction], error) {
	txs, err := s.transactions.ListTransactions(ctx, filter, repository.PageQuery{
		After:  page.After,
		Before: page.Before,
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, err
	}

	return newTransactionPage(txs, page), nil
}

// ListAddressTransactions lists transactions sent or received by address.
func (s *TransactionService) ListAddressTransactions(ctx context.Context, address string, page validation.Pagination) (*model.Page[model.Transaction], error) {
	return s.ListTransactions(ctx, repository.TransactionFilter{Address: address}, page)
}

// newTransactionPage sets next when older rows may follow and prev when the
// request already moved away from the newest page.
//
// A search_before page always has older rows behind it, at least the row its
// cursor points at, so next is set whatever its length. An empty one points
// next just above the cursor so the following page starts at that row.
func newTransactionPage(txs []model.Transaction, page validation.Pagination) *model.Page[model.Transaction] {
	if txs == nil {
		txs = []model.Transaction{}
	}

	meta := model.PageMeta{Limit: page.Limit}
	n := len(txs)

	switch {
	case n > 0 && (page.Before != nil || n >= page.Limit):
		meta.Next = cursor.Encode(txs[n-1].Seq)
	case n == 0 && page.Before != nil:
		meta.Next = cursor.Encode(*page.Before + 1)
	}

	if n > 0 && page.HasCursor() {
		meta.Prev = cursor.Encode(txs[0].Seq)
	}

	return &model.Page[model.Transaction]{Data: txs, Meta: meta}
}
