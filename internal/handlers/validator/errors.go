package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation carries one message per failed field.
type ErrValidation struct {
	error
	Fields map[string]string
}

func toValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		messages = append(messages, msg)
	}

	return &ErrValidation{error: errors.New(strings.Join(messages, "; ")), Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "report_format":
		return fmt.Sprintf("%s %q is not a supported report format (csv, html, xlsx)", fe.Field(), fe.Value())
	case "multiplier":
		return fmt.Sprintf("%s must be a finite non-negative number, got %v", fe.Field(), fe.Value())
	case "optional_file":
		return fmt.Sprintf("%s %q is not a readable file", fe.Field(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
	}
}
