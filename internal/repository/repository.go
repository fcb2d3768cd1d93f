// Package repository runs the explorer's SQL against PostgreSQL.
//
// Lookups that find nothing return an error wrapping pgx.ErrNoRows tagged
// with the table name, which sqlerr.HandleError turns into a 404.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/block-explorer/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool the repositories use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// notFound tags a missing-row error with its table. The tag goes outermost so
// identifiers in the inner message cannot be mistaken for it.
func notFound(table string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.WrapNotFound(table, err)
	}
	return err
}
