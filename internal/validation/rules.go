package validation

import "fmt"

// Reason classifies why a request was rejected.
type Reason string

const (
	ReasonMissingField      Reason = "missing_required_field"
	ReasonMutuallyExclusive Reason = "mutually_exclusive_fields"
)

// Parameter names recognised by the explorer endpoints.
const (
	ParamTerm         = "term"
	ParamHash         = "hash"
	ParamAddress      = "address"
	ParamSearchAfter  = "search_after"
	ParamSearchBefore = "search_before"
	ParamLimit        = "limit"
)

// EventValidator accepts an event by returning it unchanged, or rejects it.
type EventValidator func(event *Event) (*Event, error)

// Rule inspects one aspect of an event and reports a problem, if any.
type Rule func(event *Event) *CustomValidationError

// RequirePathParam rejects events missing the named path parameter.
func RequirePathParam(name string) Rule {
	return func(event *Event) *CustomValidationError {
		if _, ok := event.PathParam(name); ok {
			return nil
		}
		return &CustomValidationError{
			Field:   name,
			Message: "is required",
			Reason:  ReasonMissingField,
		}
	}
}

// ExclusiveQueryParams rejects events carrying both query parameters.
func ExclusiveQueryParams(first, second string) Rule {
	return func(event *Event) *CustomValidationError {
		_, hasFirst := event.QueryParam(first)
		_, hasSecond := event.QueryParam(second)
		if !hasFirst || !hasSecond {
			return nil
		}
		return &CustomValidationError{
			Field:   second,
			Message: fmt.Sprintf("cannot be combined with %s", first),
			Reason:  ReasonMutuallyExclusive,
		}
	}
}

// Check applies every rule to event. On success the same pointer is returned.
func Check(event *Event, rules ...Rule) (*Event, error) {
	target := event
	if target == nil {
		target = &Event{}
	}

	var failures CustomValidationErrors
	for _, rule := range rules {
		if failure := rule(target); failure != nil {
			failures = append(failures, *failure)
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return event, nil
}

// ValidateSnapshotsEvent requires a non-empty term (height, hash or "latest").
func ValidateSnapshotsEvent(event *Event) (*Event, error) {
	return Check(event, RequirePathParam(ParamTerm))
}

// ValidateBlocksEvent requires the block hash.
func ValidateBlocksEvent(event *Event) (*Event, error) {
	return Check(event, RequirePathParam(ParamHash))
}

// ValidateTransactionByHashEvent requires the transaction hash. search_after
// and limit are optional and independent.
func ValidateTransactionByHashEvent(event *Event) (*Event, error) {
	return Check(event, RequirePathParam(ParamHash))
}

// ExtractPagination rejects events carrying both search_after and
// search_before. limit and path parameters are not inspected.
func ExtractPagination(event *Event) (*Event, error) {
	return Check(event, ExclusiveQueryParams(ParamSearchAfter, ParamSearchBefore))
}

// Chain runs validators in order and merges their field errors. The event is
// accepted only if every validator accepts it.
func Chain(validators ...EventValidator) EventValidator {
	return func(event *Event) (*Event, error) {
		var failures CustomValidationErrors
		for _, validate := range validators {
			if _, err := validate(event); err != nil {
				custom, ok := err.(CustomValidationErrors)
				if !ok {
					return nil, err
				}
				failures = append(failures, custom...)
			}
		}

		if len(failures) > 0 {
			return nil, failures
		}
		return event, nil
	}
}
