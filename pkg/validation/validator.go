// Package validation checks configuration values with struct tags and a
// fluent validator for cross-field rules.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("validation failed")

// Struct validates the struct tags of v.
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: value cannot be nil", ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly
// format. All failing fields are reported.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%w: %s: field is required", ErrInvalid, field))
		case "min", "gte":
			errs = append(errs, fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, param))
		case "max", "lte":
			errs = append(errs, fmt.Errorf("%w: %s: must not exceed %s", ErrInvalid, field, param))
		case "gt":
			errs = append(errs, fmt.Errorf("%w: %s: must be greater than %s", ErrInvalid, field, param))
		case "oneof":
			errs = append(errs, fmt.Errorf("%w: %s: must be one of [%s]", ErrInvalid, field, param))
		default:
			errs = append(errs, fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}
