package formatter

import (
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrUnsupportedFormat indicates that an operation was asked for a format it does not handle.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMinifyNotSupported indicates that minification was requested for non-JSON input.
	ErrMinifyNotSupported = errors.New("minify is only supported for JSON")
	// ErrDuplicateKey indicates that a YAML mapping repeats a key.
	ErrDuplicateKey = errors.New("duplicate mapping key")
	// ErrNonScalarKey indicates a mapping key that cannot be represented in JSON.
	ErrNonScalarKey = errors.New("mapping key is not a scalar")
	// ErrRecursiveAlias indicates a YAML alias that refers to one of its own ancestors.
	ErrRecursiveAlias = errors.New("recursive alias")
	// ErrMultipleDocuments indicates a YAML stream with more than one document.
	ErrMultipleDocuments = errors.New("input contains multiple YAML documents")
	// ErrDocumentTooLarge indicates that alias expansion exceeded the node budget.
	ErrDocumentTooLarge = errors.New("document too large after alias expansion")
)

// FormatError is the single error kind returned by the engine.
// It carries a human-readable message and, when the parser could localize
// the failure, the 1-based line number.
type FormatError struct {
	// Format is the format the input was parsed as.
	Format Format
	// Message is the underlying parser message.
	Message string
	// Line is the 1-based line of the failure, 0 when unknown.
	Line int
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Format, e.Message)
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func newFormatError(format Format, line int, err error) *FormatError {
	return &FormatError{
		Format:  format,
		Message: err.Error(),
		Line:    line,
		Err:     err,
	}
}

// asFormatError wraps err into a FormatError unless it already is one.
func asFormatError(format Format, err error) *FormatError {
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return formatErr
	}

	return newFormatError(format, 0, err)
}
