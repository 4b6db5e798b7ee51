package document

//go:generate $MOCKGEN -source=engine.go -destination=mocks/engine_mock.go

import (
	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/schema"
)

// Engine is the subset of the format engine the service depends on.
type Engine interface {
	// Detect classifies input as JSON, YAML or Undetermined.
	Detect(input string) formatter.Format
	// Prettify re-serializes input with canonical indentation.
	Prettify(input string, format formatter.Format) (string, error)
	// MinifyAs serializes input without insignificant whitespace; only JSON is accepted.
	MinifyAs(input string, format formatter.Format) (string, error)
	// Convert serializes input as the other format.
	Convert(input string, from formatter.Format) (string, formatter.Format, error)
	// Validate parses input and reports the outcome.
	Validate(input string, format formatter.Format) formatter.ValidationResult
}

// SchemaValidator checks parsed documents against a schema.
type SchemaValidator interface {
	// Validate parses input as format and checks it against the schema.
	Validate(input string, format formatter.Format) schema.Result
}
