package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/block-explorer/internal/errs"
	"github.com/deppfellow/block-explorer/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundTagsMissingRows(t *testing.T) {
	// The hash deliberately looks like a tag.
	err := notFound("blocks", fmt.Errorf("failed to get block table:users:x: %w", pgx.ErrNoRows))

	assert.ErrorIs(t, err, pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Block not found", httpErr.Message)
	assert.Equal(t, "BLOCK_NOT_FOUND", httpErr.Code)
}

func TestNotFoundLeavesOtherErrorsAlone(t *testing.T) {
	original := errors.New("connection reset")

	assert.Same(t, original, notFound("blocks", original))
}
