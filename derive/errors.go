package derive

import (
	"errors"
	"fmt"
)

// ErrMissingField matches every *MissingFieldError via errors.Is.
var ErrMissingField = errors.New("required field was not set")

// MissingFieldError is returned by a generated Build method when a required
// field has no value.
type MissingFieldError struct {
	Record string // Record type name, e.g. "Config"
	Field  string // Field name as declared
}

// MissingField returns a *MissingFieldError for the given record field.
func MissingField(record, field string) *MissingFieldError {
	return &MissingFieldError{Record: record, Field: field}
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("derive: %s: the value of field %q was not set", e.Record, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
