package metadata

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these so callers can
// use errors.Is without a type assertion.
var (
	ErrMissingField   = errors.New("missing field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrUnknownMode    = errors.New("unknown policy mode")
	ErrUnknownRecord  = errors.New("unknown record type")
	ErrUnsupportedDoc = errors.New("unsupported document type")
)

// MissingFieldError reports a required field that is absent or null.
type MissingFieldError struct {
	Field string // Wire name of the field, e.g. "value".
	Path  string // Dotted path from the document root, e.g. "attributes[0].value".
}

func (e *MissingFieldError) Error() string {
	if e.Path == "" || e.Path == e.Field {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("missing field %q at %s", e.Field, e.Path)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// TypeMismatchError reports a field whose value has the wrong shape.
type TypeMismatchError struct {
	Field    string // Wire name of the field; empty for the document root.
	Path     string // Dotted path from the document root.
	Expected string // Expected shape, e.g. "non-negative integer".
	Actual   string // Shape found, e.g. "string" or "number -3".
}

func (e *TypeMismatchError) Error() string {
	where := e.Path
	if where == "" {
		where = "document"
	}
	return fmt.Sprintf("invalid type at %s: expected %s, got %s", where, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func missing(f Field, path string) error {
	return &MissingFieldError{Field: f.Name, Path: path}
}

func mismatch(field, path, expected, actual string) error {
	return &TypeMismatchError{Field: field, Path: path, Expected: expected, Actual: actual}
}

// joinPath appends a field name to a dotted path.
func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// indexPath appends an array index to a path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
