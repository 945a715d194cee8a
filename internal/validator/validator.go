package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/histcollect/histcollect/internal/domain"
)

// V is the singleton validator instance
var V *validator.Validate

func init() {
	V = validator.New(validator.WithRequiredStructEnabled())

	V.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = V.RegisterValidation("tag", validateTag)
	_ = V.RegisterValidation("keylist", validateKeyList)
}

// validateTag accepts "name", "name:value" and "#name"
func validateTag(fl validator.FieldLevel) bool {
	_, err := domain.ParseTag(fl.Field().String())
	return err == nil
}

// validateKeyList accepts a comma separated list of serializer keys
func validateKeyList(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			return false
		}
		for _, r := range key {
			if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				return false
			}
		}
	}
	return true
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// Validate validates a struct and returns ValidationErrors if invalid
func Validate(v any) error {
	if err := V.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator errors to ValidationErrors
func formatValidationErrors(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	validationErrors := make(ValidationErrors, 0, len(errs))
	for _, e := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(e),
			Message: getErrorMessage(e),
		})
	}
	return validationErrors
}

// fieldPath returns the namespaced field name without the root struct,
// e.g. "tags[1]"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

// getErrorMessage returns a human-readable error message for a validation error
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must have at least %s items", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must have at most %s items", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "tag":
		return "must be a tag of the form name, name:value or #name"
	case "keylist":
		return "must be a comma separated list of keys"
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}

// IsValidationError checks if an error is a ValidationErrors
func IsValidationError(err error) bool {
	_, ok := err.(ValidationErrors)
	return ok
}
