// Package schema validates parsed JSON and YAML documents against a JSON Schema.
package schema

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oshokin/docformat/internal/formatter"
)

// schemaResourceURL is the name the compiled schema is registered under.
const schemaResourceURL = "schema.json"

// Static error definitions for better error handling.
var (
	// ErrUndeterminedSchemaFormat indicates that the schema is neither JSON nor YAML.
	ErrUndeterminedSchemaFormat = errors.New("schema is neither a JSON nor a YAML document")
)

// Result is the outcome of a schema validation.
type Result struct {
	// Valid reports whether the document satisfies the schema.
	Valid bool
	// Errors lists the violations as "path: message", sorted.
	Errors []string
}

// Validator validates documents against a compiled schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
	engine *formatter.Engine
}

// CompileFile reads and compiles the schema stored at path.
func CompileFile(path string) (*Validator, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	return Compile(string(content))
}

// Compile compiles a JSON Schema written either as JSON or as YAML.
func Compile(schemaText string) (*Validator, error) {
	engine := formatter.New()

	format := engine.Detect(schemaText)
	if !format.IsDetermined() {
		return nil, ErrUndeterminedSchemaFormat
	}

	document, err := toJSONValue(engine, schemaText, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	if err = compiler.AddResource(schemaResourceURL, document); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(schemaResourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{
		schema: compiled,
		engine: engine,
	}, nil
}

// Validate parses input as format and checks it against the schema.
// Parse failures are reported as a single violation.
func (v *Validator) Validate(input string, format formatter.Format) Result {
	document, err := toJSONValue(v.engine, input, format)
	if err != nil {
		return Result{Errors: []string{err.Error()}}
	}

	if err = v.schema.Validate(document); err != nil {
		return Result{Errors: extractValidationErrors(err)}
	}

	return Result{Valid: true}
}

// toJSONValue parses input into the value model the schema library works with.
func toJSONValue(engine *formatter.Engine, input string, format formatter.Format) (any, error) {
	text, err := engine.ToJSON(input, format)
	if err != nil {
		return nil, err
	}

	return jsonschema.UnmarshalJSON(strings.NewReader(text))
}

// printer is a default English printer for localized error messages.
//
//nolint:gochecknoglobals // The printer is immutable and shared.
var printer = message.NewPrinter(language.English)

func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	seen := make(map[string]struct{})
	collectErrors(validationErr, seen)

	result := make([]string, 0, len(seen))
	for msg := range seen {
		result = append(result, msg)
	}

	slices.Sort(result)

	return result
}

// collectErrors gathers leaf errors, the ones describing a concrete violation.
func collectErrors(err *jsonschema.ValidationError, seen map[string]struct{}) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)

		path := "/" + strings.Join(err.InstanceLocation, "/")
		seen[path+": "+msg] = struct{}{}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, seen)
	}
}
