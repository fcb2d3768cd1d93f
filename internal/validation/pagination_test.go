package validation

import (
	"net/http"
	"testing"

	"github.com/deppfellow/block-explorer/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	after := cursor.Encode(40)
	before := cursor.Encode(7)

	t.Run("defaults", func(t *testing.T) {
		page, err := ParsePagination(newEvent())
		require.NoError(t, err)
		assert.Equal(t, DefaultLimit, page.Limit)
		assert.False(t, page.HasCursor())
	})

	t.Run("search_after and limit", func(t *testing.T) {
		page, err := ParsePagination(newEvent(withQueryParam(ParamSearchAfter, after), withQueryParam(ParamLimit, "2")))
		require.NoError(t, err)
		require.NotNil(t, page.After)
		assert.Equal(t, int64(40), *page.After)
		assert.Nil(t, page.Before)
		assert.Equal(t, 2, page.Limit)
	})

	t.Run("search_before", func(t *testing.T) {
		page, err := ParsePagination(newEvent(withQueryParam(ParamSearchBefore, before)))
		require.NoError(t, err)
		require.NotNil(t, page.Before)
		assert.Equal(t, int64(7), *page.Before)
		assert.True(t, page.HasCursor())
	})

	t.Run("both cursors", func(t *testing.T) {
		_, err := ParsePagination(newEvent(withQueryParam(ParamSearchAfter, after), withQueryParam(ParamSearchBefore, before)))
		var failures CustomValidationErrors
		require.ErrorAs(t, err, &failures)
		assert.True(t, failures.HasReason(ReasonMutuallyExclusive))
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, err := ParsePagination(newEvent(withQueryParam(ParamSearchAfter, "aa")))
		var failures CustomValidationErrors
		require.ErrorAs(t, err, &failures)
		assert.Equal(t, ParamSearchAfter, failures[0].Field)
	})

	t.Run("non numeric limit", func(t *testing.T) {
		_, err := ParsePagination(newEvent(withQueryParam(ParamLimit, "ten")))
		httpErr := ToHTTPError(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "limit", httpErr.Errors[0].Field)
		assert.Equal(t, "must be a number", httpErr.Errors[0].Error)
	})

	t.Run("limit out of range", func(t *testing.T) {
		for _, raw := range []string{"0", "101", "-5"} {
			_, err := ParsePagination(newEvent(withQueryParam(ParamLimit, raw)))
			httpErr := ToHTTPError(err)
			require.Len(t, httpErr.Errors, 1, raw)
			assert.Equal(t, "limit", httpErr.Errors[0].Field)
		}
	})

	t.Run("limit bounds", func(t *testing.T) {
		for _, raw := range []string{"1", "100"} {
			_, err := ParsePagination(newEvent(withQueryParam(ParamLimit, raw)))
			assert.NoError(t, err, raw)
		}
	})
}
