package document

import (
	"time"

	"github.com/oshokin/docformat/internal/formatter"
)

// Operation names an action applied to every input of a request.
type Operation string

const (
	// OperationDetect reports the detected format.
	OperationDetect Operation = "detect"
	// OperationFormat pretty-prints the input.
	OperationFormat Operation = "format"
	// OperationMinify compacts JSON input.
	OperationMinify Operation = "minify"
	// OperationConvert converts JSON to YAML and YAML to JSON.
	OperationConvert Operation = "convert"
	// OperationValidate validates the input and, optionally, checks it against a schema.
	OperationValidate Operation = "validate"
)

// IsValid reports whether o is a known operation.
func (o Operation) IsValid() bool {
	switch o {
	case OperationDetect, OperationFormat, OperationMinify, OperationConvert, OperationValidate:
		return true
	default:
		return false
	}
}

// producesOutput reports whether the operation yields a new document.
func (o Operation) producesOutput() bool {
	return o == OperationFormat || o == OperationMinify || o == OperationConvert
}

// Request describes one run of the service.
type Request struct {
	// Operation is applied to every input.
	Operation Operation
	// Inputs are file paths; "-" stands for standard input. No inputs means standard input.
	Inputs []string
	// Format forces the input format; Undetermined enables detection.
	Format formatter.Format
	// OutputPath is a directory receiving the results; empty means no files are written.
	OutputPath string
	// WriteInPlace rewrites the inputs (converted files get the target extension).
	WriteInPlace bool
}

// Result describes the outcome for a single input.
type Result struct {
	// Input is the path as given in the request.
	Input string
	// Operation is the operation that was applied.
	Operation Operation
	// Format is the resolved format of the input.
	Format formatter.Format
	// OutputFormat is the format of Output.
	OutputFormat formatter.Format
	// Output is the produced document, if the operation produces one.
	Output string
	// Destination is the file Output was written to; empty when it was not written.
	Destination string
	// Validation is the parse outcome of a validate operation.
	Validation *formatter.ValidationResult
	// SchemaErrors lists schema violations of a validate operation.
	SchemaErrors []string
	// InputSize is the size of the input in bytes.
	InputSize int64
	// OutputSize is the number of bytes written to Destination.
	OutputSize int64
	// Err is the failure that stopped processing of this input.
	Err error
}

// Failed reports whether processing of the input failed.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// IsValid reports whether a validate operation found the input valid.
func (r *Result) IsValid() bool {
	return r.Err == nil && r.Validation != nil && r.Validation.Valid && len(r.SchemaErrors) == 0
}

// Statistics holds counters for a run of the service.
type Statistics struct {
	// FilesProcessed is the number of inputs handled.
	FilesProcessed int64
	// FilesSucceeded is the number of inputs processed without error.
	FilesSucceeded int64
	// FilesFailed is the number of inputs that failed.
	FilesFailed int64
	// FilesInvalid is the number of inputs a validate operation rejected.
	FilesInvalid int64
	// FilesWritten is the number of output files written.
	FilesWritten int64
	// BytesRead is the total size of all inputs.
	BytesRead int64
	// BytesWritten is the total size of all written outputs.
	BytesWritten int64
	// StartTime is when processing started.
	StartTime time.Time
	// EndTime is when processing finished.
	EndTime time.Time
}
