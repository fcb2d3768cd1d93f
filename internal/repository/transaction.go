package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `seq, hash, source, destination, amount, fee, parent_hash,
	block_hash, snapshot_hash, snapshot_ordinal, timestamp`

// TransactionFilter narrows ListTransactions. At most one field is expected
// to be set; an empty filter lists every transaction.
type TransactionFilter struct {
	Address      string
	SnapshotHash string
}

// PageQuery is a keyset page over transactions.seq. After selects older rows,
// Before newer ones; both nil selects the newest rows.
type PageQuery struct {
	After  *int64
	Before *int64
	Limit  int
}

type TransactionRepository struct {
	db Querier
}

func NewTransactionRepository(db Querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetTransactionByHash(ctx context.Context, hash string) (*model.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE hash = $1`, hash)

	tx, err := scanTransaction(row)
	if err != nil {
		return nil, notFound("transactions", fmt.Errorf("failed to get transaction %s: %w", hash, err))
	}
	return tx, nil
}

// ListTransactions returns at most page.Limit transactions, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, filter TransactionFilter, page PageQuery) ([]model.Transaction, error) {
	query, args := buildListTransactionsQuery(filter, page)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Transaction, error) {
		tx, err := scanTransaction(row)
		if err != nil {
			return model.Transaction{}, err
		}
		return *tx, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	// Newer pages are read oldest first so the limit keeps the rows closest
	// to the cursor.
	if page.Before != nil {
		slices.Reverse(txs)
	}

	return txs, nil
}

func buildListTransactionsQuery(filter TransactionFilter, page PageQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case filter.Address != "":
		p := arg(filter.Address)
		conds = append(conds, "(source = "+p+" OR destination = "+p+")")
	case filter.SnapshotHash != "":
		conds = append(conds, "snapshot_hash = "+arg(filter.SnapshotHash))
	}

	order := "DESC"
	switch {
	case page.After != nil:
		conds = append(conds, "seq < "+arg(*page.After))
	case page.Before != nil:
		conds = append(conds, "seq > "+arg(*page.Before))
		order = "ASC"
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + transactionColumns + " FROM transactions")
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY seq " + order)
	sb.WriteString(" LIMIT " + arg(page.Limit))

	return sb.String(), args
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(
		&t.Seq,
		&t.Hash,
		&t.Source,
		&t.Destination,
		&t.Amount,
		&t.Fee,
		&t.ParentHash,
		&t.BlockHash,
		&t.SnapshotHash,
		&t.SnapshotOrdinal,
		&t.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
