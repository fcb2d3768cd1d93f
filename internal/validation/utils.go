package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/block-explorer/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidationError is a single rejected parameter, for checks that
// cannot be expressed with validator tags.
type CustomValidationError struct {
	Field   string
	Message string
	Reason  Reason
}

// CustomValidationErrors is a list of rejected parameters that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	parts := make([]string, 0, len(c))
	for _, failure := range c {
		parts = append(parts, failure.Field+" "+failure.Message)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasReason reports whether any entry was rejected for reason.
func (c CustomValidationErrors) HasReason(reason Reason) bool {
	for _, failure := range c {
		if failure.Reason == reason {
			return true
		}
	}
	return false
}

// ValidateEvent builds the event for the current request and runs validate
// on it. Rejections come back as a 400 *errs.HTTPError.
func ValidateEvent(c echo.Context, validate EventValidator) (*Event, error) {
	event, err := validate(EventFromContext(c))
	if err != nil {
		return nil, ToHTTPError(err)
	}
	return event, nil
}

// ToHTTPError converts validator output into a 400 with field errors.
// Errors of any other type are returned as a plain validation error.
func ToHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors, code := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewBadRequestError(msg, true, code, fieldErrors, nil)
}

func extractValidationError(err error) (string, []errs.FieldError, *string) {
	var fieldErrors []errs.FieldError
	var code *string

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		reasons := map[Reason]struct{}{}
		for _, failure := range customValidationErrors {
			reasons[failure.Reason] = struct{}{}
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: failure.Field,
				Error: failure.Message,
			})
		}

		// A single reason becomes the error code, e.g. MISSING_REQUIRED_FIELD.
		if len(reasons) == 1 {
			for reason := range reasons {
				if reason != "" {
					formatted := strings.ToUpper(string(reason))
					code = &formatted
				}
			}
		}

		return "Validation failed", fieldErrors, code
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil, nil
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "hexadecimal":
			msg = "must be a hexadecimal string"

		case "number", "numeric":
			msg = "must be a number"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors, nil
}
