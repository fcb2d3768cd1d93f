package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventOption func(*Event)

func withPathParam(name, value string) eventOption {
	return func(e *Event) {
		if e.PathParameters == nil {
			e.PathParameters = map[string]string{}
		}
		e.PathParameters[name] = value
	}
}

func withQueryParam(name, value string) eventOption {
	return func(e *Event) {
		if e.QueryStringParameters == nil {
			e.QueryStringParameters = map[string]string{}
		}
		e.QueryStringParameters[name] = value
	}
}

func newEvent(opts ...eventOption) *Event {
	event := &Event{HTTPMethod: "GET"}
	for _, opt := range opts {
		opt(event)
	}
	return event
}

type eventValidatorTestCase struct {
	name   string
	event  *Event
	reason Reason
}

func runEventValidatorTests(t *testing.T, tag string, tests []eventValidatorTestCase, validator EventValidator) {
	for _, test := range tests {
		t.Run(tag+"_"+test.name, func(t *testing.T) {
			result, err := validator(test.event)

			if test.reason == "" {
				require.NoError(t, err)
				assert.Same(t, test.event, result)
				return
			}

			require.Error(t, err)
			assert.Nil(t, result)

			var failures CustomValidationErrors
			require.ErrorAs(t, err, &failures)
			assert.True(t, failures.HasReason(test.reason), "expected reason %s in %v", test.reason, failures)
		})
	}
}

func TestValidateSnapshotsEvent(t *testing.T) {
	tests := []eventValidatorTestCase{
		{"no term", newEvent(), ReasonMissingField},
		{"empty term", newEvent(withPathParam(ParamTerm, "")), ReasonMissingField},
		{"other path param only", newEvent(withPathParam(ParamHash, "abc")), ReasonMissingField},
		{"term height", newEvent(withPathParam(ParamTerm, "123")), ""},
		{"term latest", newEvent(withPathParam(ParamTerm, "latest")), ""},
		{"term with query", newEvent(withPathParam(ParamTerm, "123"), withQueryParam(ParamLimit, "5")), ""},
	}

	runEventValidatorTests(t, "snapshots", tests, ValidateSnapshotsEvent)
}

func TestValidateBlocksEvent(t *testing.T) {
	tests := []eventValidatorTestCase{
		{"no hash", newEvent(), ReasonMissingField},
		{"empty maps", &Event{PathParameters: map[string]string{}, QueryStringParameters: map[string]string{}}, ReasonMissingField},
		{"term instead of hash", newEvent(withPathParam(ParamTerm, "123")), ReasonMissingField},
		{"hash present", newEvent(withPathParam(ParamHash, "hash")), ""},
	}

	runEventValidatorTests(t, "blocks", tests, ValidateBlocksEvent)
}

func TestValidateTransactionByHashEvent(t *testing.T) {
	tests := []eventValidatorTestCase{
		{"no hash with pagination", newEvent(withQueryParam(ParamLimit, "2"), withQueryParam(ParamSearchAfter, "aa")), ReasonMissingField},
		{"search_after without limit", newEvent(withPathParam(ParamHash, "foo"), withQueryParam(ParamSearchAfter, "aa")), ""},
		{"limit without search_after", newEvent(withPathParam(ParamHash, "foo"), withQueryParam(ParamLimit, "12")), ""},
		{"hash only", newEvent(withPathParam(ParamHash, "foo")), ""},
		{"search_after and limit", newEvent(withPathParam(ParamHash, "foo"), withQueryParam(ParamSearchAfter, "aa"), withQueryParam(ParamLimit, "2")), ""},
	}

	runEventValidatorTests(t, "transaction_by_hash", tests, ValidateTransactionByHashEvent)
}

func TestExtractPagination(t *testing.T) {
	tests := []eventValidatorTestCase{
		{"search_after and search_before", newEvent(withQueryParam(ParamLimit, "2"), withQueryParam(ParamSearchAfter, "aa"), withQueryParam(ParamSearchBefore, "bb")), ReasonMutuallyExclusive},
		{"search_after without limit", newEvent(withPathParam(ParamAddress, "123"), withQueryParam(ParamSearchAfter, "aa")), ""},
		{"limit without search_after", newEvent(withPathParam(ParamAddress, "123"), withQueryParam(ParamLimit, "12")), ""},
		{"search_after and limit", newEvent(withPathParam(ParamAddress, "123"), withQueryParam(ParamSearchAfter, "aa"), withQueryParam(ParamLimit, "2")), ""},
		{"search_before and limit", newEvent(withPathParam(ParamAddress, "123"), withQueryParam(ParamSearchBefore, "aa"), withQueryParam(ParamLimit, "2")), ""},
		{"nothing", newEvent(), ""},
		{"invalid limit is not inspected", newEvent(withQueryParam(ParamLimit, "lots")), ""},
		{"empty search_before is absent", newEvent(withQueryParam(ParamSearchAfter, "aa"), withQueryParam(ParamSearchBefore, "")), ""},
	}

	runEventValidatorTests(t, "pagination", tests, ExtractPagination)
}

func TestValidatorsDoNotMutateEvent(t *testing.T) {
	event := newEvent(withPathParam(ParamHash, "foo"), withQueryParam(ParamSearchAfter, "aa"), withQueryParam(ParamLimit, "2"))
	snapshot := *event
	path := map[string]string{ParamHash: "foo"}
	query := map[string]string{ParamSearchAfter: "aa", ParamLimit: "2"}

	for _, validate := range []EventValidator{ValidateBlocksEvent, ValidateTransactionByHashEvent, ExtractPagination, ValidateSnapshotsEvent} {
		_, _ = validate(event)
	}

	assert.Equal(t, snapshot.HTTPMethod, event.HTTPMethod)
	assert.Equal(t, path, event.PathParameters)
	assert.Equal(t, query, event.QueryStringParameters)
}

func TestNilEvent(t *testing.T) {
	result, err := ExtractPagination(nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	_, err = ValidateBlocksEvent(nil)
	assert.Error(t, err)
}

func TestChainMergesFailures(t *testing.T) {
	validate := Chain(ValidateSnapshotsEvent, ExtractPagination)

	_, err := validate(newEvent(withQueryParam(ParamSearchAfter, "a"), withQueryParam(ParamSearchBefore, "b")))
	var failures CustomValidationErrors
	require.ErrorAs(t, err, &failures)
	require.Len(t, failures, 2)
	assert.True(t, failures.HasReason(ReasonMissingField))
	assert.True(t, failures.HasReason(ReasonMutuallyExclusive))

	event := newEvent(withPathParam(ParamTerm, "latest"))
	result, err := validate(event)
	require.NoError(t, err)
	assert.Same(t, event, result)
}
