package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field messages of a rejected request body.
// It unwraps to errs.ErrValueIsInvalid.
type ValidationError struct {
	Details map[string]string
}

// Error lists the failing fields in field order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	return fmt.Sprintf("%s: %s", errs.ErrValueIsInvalid, strings.Join(fields, ", "))
}

// Unwrap returns errs.ErrValueIsInvalid.
func (e *ValidationError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator. Failures come back as *ValidationError.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	details := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		details[fieldPath(e)] = formatValidationError(e)
	}
	return &ValidationError{Details: details}
}

// fieldPath drops the root struct name: "registerOrderRequest.lines[0].sku"
// becomes "lines[0].sku".
func fieldPath(e validator.FieldError) string {
	_, path, found := strings.Cut(e.Namespace(), ".")
	if !found {
		return e.Field()
	}
	return path
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "must be greater than " + e.Param()
	case "min":
		return "must have at least " + e.Param() + " items"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "invalid value"
	}
}
