package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}

func TestNewBadRequestError(t *testing.T) {
	fieldErrors := []FieldError{{Field: "hash", Error: "is required"}}

	err := NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, err.Override)
	assert.Equal(t, fieldErrors, err.Errors)

	code := "MISSING_REQUIRED_FIELD"
	err = NewBadRequestError("Validation failed", false, &code, nil, nil)
	assert.Equal(t, code, err.Code)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Snapshot not found", true, nil)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)

	code := "SNAPSHOT_NOT_FOUND"
	err = NewNotFoundError("Snapshot not found", true, &code)
	assert.Equal(t, code, err.Code)
}

func TestNewServiceUnavailableError(t *testing.T) {
	err := NewServiceUnavailableError("database unreachable")
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	require.NotNil(t, err.Action)
	assert.Equal(t, ActionTypeRetry, err.Action.Type)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("loading block: %w", NewNotFoundError("Block not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Block not found", httpErr.Error())
}

func TestWithMessageCopies(t *testing.T) {
	original := NewInternalServerError()
	copied := original.WithMessage("boom")

	assert.Equal(t, "boom", copied.Message)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), original.Message)
	assert.Equal(t, original.Code, copied.Code)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("limit is invalid"))
	assert.Equal(t, "Validation failed: limit is invalid", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
