package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"derive-generator/internal/classify"
	"derive-generator/internal/common"
	"derive-generator/internal/schema"
)

// Diagnostic codes.
const (
	CodeUnsupportedTypeShape = "UNSUPPORTED_TYPE_SHAPE"
	CodeDuplicateField       = "DUPLICATE_FIELD"
	CodeUnknownDerive        = "DERIVE_UNKNOWN"
	CodeTypeNotFound         = "TYPE_NOT_FOUND"
	CodeTypeCheck            = "TYPE_CHECK"
	CodeGenerationFailed     = "GENERATION_FAILED"
	CodeFilenameCollision    = "FILENAME_COLLISION"
)

// CodeFor maps a generation error to its diagnostic code.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, classify.ErrUnsupportedTypeShape):
		return CodeUnsupportedTypeShape
	case errors.Is(err, schema.ErrDuplicateField):
		return CodeDuplicateField
	default:
		return CodeGenerationFailed
	}
}

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record identifies which record this relates to (if any).
	Record string
	// Position is the source position, "file:line:col" (if known).
	Position string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, record, position string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Record:   record,
		Position: position,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, position string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Record:   record,
		Position: position,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns errors followed by warnings.
func (d Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings))
	out = append(out, d.Errors...)

	return append(out, d.Warnings...)
}

// Err returns a combined error from all error diagnostics, or nil if there
// are none.
func (d Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Position != "" {
		prefix = append(prefix, d.Position)
	}

	if d.Record != "" {
		prefix = append(prefix, "["+d.Record+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
