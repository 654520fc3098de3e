package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/bluecommit/config/tree"
)

var (
	// ErrTypeMismatch indicates a field holds a value of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrFieldMissing indicates a declared field is absent from the validated tree.
	// Trees merged with Schema.Defaults never produce it.
	ErrFieldMissing = errors.New("declared field missing")

	// ErrInvalidSchema indicates a schema definition is inconsistent.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnknownPolicy indicates a policy name that is neither "partial" nor "strict".
	ErrUnknownPolicy = errors.New("unknown validation policy")
)

// FieldError describes a problem with one declared field.
type FieldError struct {
	// Path is the declared field path.
	Path string
	// Expected is the declared kind.
	Expected tree.Kind
	// Got is the kind found, KindInvalid when missing.
	Got tree.Kind
	// Value is the offending value, nil when missing.
	Value tree.Value
	// At is set when a leaf above the field blocks it, e.g. "stats" for "stats.enable".
	At string
	// Err is ErrTypeMismatch or ErrFieldMissing.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	switch {
	case errors.Is(e.Err, ErrFieldMissing):
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.At != "":
		return fmt.Sprintf("%s: expected %s, but %s holds a %s", e.Path, e.Expected, e.At, e.Got)
	default:
		return fmt.Sprintf("%s: expected %s, got %s %v", e.Path, e.Expected, e.Got, e.Value)
	}
}

// Unwrap returns the sentinel error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects field errors from one validation run.
type ValidationErrors struct {
	Errors []*FieldError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Unwrap exposes every field error to errors.Is and errors.As.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}

	return errs
}

// Add appends a field error.
func (e *ValidationErrors) Add(err *FieldError) {
	e.Errors = append(e.Errors, err)
}

// HasErrors reports whether any error was collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// AsError returns e, or nil when it holds no errors.
func (e *ValidationErrors) AsError() error {
	if !e.HasErrors() {
		return nil
	}

	return e
}
