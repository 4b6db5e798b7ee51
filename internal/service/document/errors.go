package document

import "errors"

// Common errors for the document service.
var (
	// ErrUnknownOperation indicates that the requested operation does not exist.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrTooManyFiles indicates that the batch exceeds the configured file limit.
	ErrTooManyFiles = errors.New("too many files")
	// ErrStdinRepeated indicates that standard input was named more than once.
	ErrStdinRepeated = errors.New("standard input can only be read once")
	// ErrInputTooLarge indicates that an input exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input too large")
	// ErrUndeterminedFormat indicates that the input is neither JSON nor YAML.
	ErrUndeterminedFormat = errors.New("could not determine input format")
)
