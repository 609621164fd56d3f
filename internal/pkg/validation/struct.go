package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the JSON name so messages match the wire field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Identifier.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("txref", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.TransactionRef.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates obj against its `validate` tags. Failures come back as a
// *apperrors.ValidationError, one entry per field.
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	return toValidationError(err)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters long"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters long"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "eqfield":
		return e.Field() + " does not match"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "identifier":
		return e.Field() + " is not a valid student ID"
	case "txref":
		return e.Field() + " is not a valid transaction reference"
	case "datetime":
		return e.Field() + " must be a date in YYYY-MM-DD format"
	case "uuid":
		return e.Field() + " must be a valid UUID"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// Partial validates only the named top-level struct fields of obj
func Partial(obj interface{}, fields ...string) error {
	err := validate.StructPartial(obj, fields...)
	if err == nil {
		return nil
	}

	return toValidationError(err)
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), formatValidationError(fe))
	}
	return verr
}
