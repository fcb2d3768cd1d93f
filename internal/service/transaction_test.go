package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/block-explorer/internal/cursor"
	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/repository"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqs(from, to int64) []model.Transaction {
	var txs []model.Transaction
	for s := from; s >= to; s-- {
		txs = append(txs, model.Transaction{Seq: s})
	}
	return txs
}

func int64Ptr(v int64) *int64 { return &v }

func TestNewTransactionPage(t *testing.T) {
	tests := []struct {
		name     string
		txs      []model.Transaction
		page     validation.Pagination
		wantNext string
		wantPrev string
	}{
		{
			name:     "full first page",
			txs:      seqs(10, 8),
			page:     validation.Pagination{Limit: 3},
			wantNext: cursor.Encode(8),
		},
		{
			name: "short first page",
			txs:  seqs(2, 1),
			page: validation.Pagination{Limit: 3},
		},
		{
			name:     "full page after cursor",
			txs:      seqs(7, 5),
			page:     validation.Pagination{After: int64Ptr(8), Limit: 3},
			wantNext: cursor.Encode(5),
			wantPrev: cursor.Encode(7),
		},
		{
			name:     "short page before cursor",
			txs:      seqs(12, 11),
			page:     validation.Pagination{Before: int64Ptr(10), Limit: 3},
			wantNext: cursor.Encode(11),
			wantPrev: cursor.Encode(12),
		},
		{
			name:     "full page before cursor",
			txs:      seqs(13, 11),
			page:     validation.Pagination{Before: int64Ptr(10), Limit: 3},
			wantNext: cursor.Encode(11),
			wantPrev: cursor.Encode(13),
		},
		{
			name:     "empty page before cursor",
			page:     validation.Pagination{Before: int64Ptr(10), Limit: 3},
			wantNext: cursor.Encode(11),
		},
		{
			name: "empty page after cursor",
			page: validation.Pagination{After: int64Ptr(1), Limit: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTransactionPage(tt.txs, tt.page)

			assert.NotNil(t, got.Data)
			assert.Equal(t, tt.page.Limit, got.Meta.Limit)
			assert.Equal(t, tt.wantNext, got.Meta.Next)
			assert.Equal(t, tt.wantPrev, got.Meta.Prev)
		})
	}
}

func TestListAddressTransactionsPassesPage(t *testing.T) {
	repo := &fakeTransactionRepo{page: seqs(5, 4)}
	svc := NewTransactionService(repo, newMemoryCache(), time.Hour, nopLogger())

	page, err := svc.ListAddressTransactions(context.Background(), "DAG1", validation.Pagination{After: int64Ptr(6), Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, repository.TransactionFilter{Address: "DAG1"}, repo.lastFilter)
	assert.Equal(t, repository.PageQuery{After: int64Ptr(6), Limit: 2}, repo.lastPage)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, cursor.Encode(4), page.Meta.Next)
}

func TestGetTransactionReadsThroughCache(t *testing.T) {
	amount := decimal.RequireFromString("100000000")
	repo := &fakeTransactionRepo{txs: map[string]*model.Transaction{
		"t1": {Hash: "t1", Amount: amount, Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}}
	svc := NewTransactionService(repo, newMemoryCache(), time.Hour, nopLogger())
	ctx := context.Background()

	first, err := svc.GetTransaction(ctx, "t1")
	require.NoError(t, err)

	second, err := svc.GetTransaction(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.True(t, amount.Equal(second.Amount))
	assert.True(t, first.Timestamp.Equal(second.Timestamp))
}

func TestGetBlock(t *testing.T) {
	repo := &fakeBlockRepo{blocks: map[string]*model.Block{"b1": {Hash: "b1", ParentHashes: []string{"p"}}}}
	svc := NewBlockService(repo, newMemoryCache(), time.Hour, nopLogger())

	block, err := svc.GetBlock(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, block.ParentHashes)

	_, err = svc.GetBlock(context.Background(), "nope")
	assert.Error(t, err)
}

func TestBeforePageLinksBackToCursorRow(t *testing.T) {
	repo := &fakeTransactionRepo{page: seqs(12, 11)}
	svc := NewTransactionService(repo, newMemoryCache(), time.Hour, nopLogger())

	page, err := svc.ListTransactions(context.Background(), repository.TransactionFilter{}, validation.Pagination{Before: int64Ptr(10), Limit: 20})
	require.NoError(t, err)

	require.NotEmpty(t, page.Meta.Next)
	next, err := cursor.Decode(page.Meta.Next)
	require.NoError(t, err)

	// Following next (seq < 11) must reach row 10, the row the client came from.
	assert.Equal(t, int64(11), next)
	assert.Equal(t, cursor.Encode(12), page.Meta.Prev)
}
