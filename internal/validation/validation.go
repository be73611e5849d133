// Package validation holds the field-level error type shared by the services.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error reports a missing or malformed request field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errorf builds an *Error for field.
func Errorf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether err carries a validation failure.
func IsError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Required trims value and fails when nothing is left.
func Required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", Errorf(field, "This field may not be blank.")
	}
	return v, nil
}

// MaxLength fails when value has more than max characters.
func MaxLength(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return Errorf(field, "Ensure this field has no more than %d characters.", max)
	}
	return nil
}
