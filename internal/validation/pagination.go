package validation

import (
	"strconv"

	"github.com/deppfellow/block-explorer/internal/cursor"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var validate = validator.New()

// Pagination is the typed form of search_after / search_before / limit.
// At most one of After and Before is set.
type Pagination struct {
	After  *int64
	Before *int64
	Limit  int `validate:"min=1,max=100"`
}

// HasCursor reports whether the page is anchored on a cursor.
func (p Pagination) HasCursor() bool {
	return p.After != nil || p.Before != nil
}

// ParsePagination decodes the pagination query parameters of an event that
// ExtractPagination accepts. A missing limit defaults to DefaultLimit.
func ParsePagination(event *Event) (Pagination, error) {
	if _, err := ExtractPagination(event); err != nil {
		return Pagination{}, err
	}
	if event == nil {
		return Pagination{Limit: DefaultLimit}, nil
	}

	page := Pagination{Limit: DefaultLimit}
	var failures CustomValidationErrors

	decode := func(name string) *int64 {
		raw, ok := event.QueryParam(name)
		if !ok {
			return nil
		}
		seq, err := cursor.Decode(raw)
		if err != nil {
			failures = append(failures, CustomValidationError{
				Field:   name,
				Message: "is not a valid cursor",
			})
			return nil
		}
		return &seq
	}

	page.After = decode(ParamSearchAfter)
	page.Before = decode(ParamSearchBefore)

	if raw, ok := event.QueryParam(ParamLimit); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			failures = append(failures, CustomValidationError{
				Field:   ParamLimit,
				Message: "must be a number",
			})
		} else {
			page.Limit = limit
		}
	}

	if len(failures) > 0 {
		return Pagination{}, failures
	}

	if err := validate.Struct(page); err != nil {
		return Pagination{}, err
	}

	return page, nil
}
