package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookmarked/internal/domain"
)

// validate caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "parentAddress" -> "parent address")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"address":       "address",
		"parentAddress": "parent address",
		"from":          "source address",
		"to":            "destination address",
		"title":         "title",
		"url":           "URL",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateAddress parses an address argument.
// Returns a ValidationError if it cannot be parsed.
func ValidateAddress(fieldName, value string) (domain.Address, error) {
	addr, err := domain.ParseAddress(value)
	if err != nil {
		return nil, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %q", formatFieldName(fieldName), value),
		}
	}
	return addr, nil
}

// ValidateURL checks that a bookmark target is an absolute URL with a scheme.
func ValidateURL(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if err := validate.Var(strings.TrimSpace(value), "url"); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected an absolute URL, got: %s", value),
		}
	}
	return nil
}

// ValidateStruct checks the `validate` tags of a request struct and reports the
// first failing field as a ValidationError named after its json tag.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	name := fe.Field()
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("%s failed %q validation", formatFieldName(name), fe.Tag()),
	}
}

// ValidateNotRoot rejects the root address for operations that need a real node
func ValidateNotRoot(fieldName string, a domain.Address) error {
	if a.IsRoot() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s cannot be the root", formatFieldName(fieldName)),
		}
	}
	return nil
}
