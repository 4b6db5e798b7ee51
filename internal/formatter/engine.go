package formatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultIndent is the indentation width used for pretty output.
	DefaultIndent = 2
	// MinIndent is the smallest indentation width the YAML emitter honours.
	MinIndent = 2
	// MaxIndent is the largest supported indentation width.
	MaxIndent = 8
)

// ValidationResult is the outcome of Validate.
// ErrorMessage and LineNumber are only set when Valid is false;
// LineNumber is 0 when the failure could not be localized.
type ValidationResult struct {
	// Valid reports whether the input parsed successfully.
	Valid bool `json:"valid"`
	// ErrorMessage is the underlying parser message.
	ErrorMessage string `json:"errorMessage,omitempty"`
	// LineNumber is the 1-based line of the failure.
	LineNumber int `json:"lineNumber,omitempty"`
}

// Engine performs format operations. It holds only immutable options and is
// safe for concurrent use.
type Engine struct {
	indent int
}

// Option configures an Engine.
type Option func(*Engine)

// WithIndent sets the indentation width for pretty output.
// Values outside [MinIndent, MaxIndent] are ignored.
func WithIndent(indent int) Option {
	return func(e *Engine) {
		if indent >= MinIndent && indent <= MaxIndent {
			e.indent = indent
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{indent: DefaultIndent}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Indent returns the indentation width used for pretty output.
func (e *Engine) Indent() int {
	return e.indent
}

// Detect classifies input as JSON, YAML or Undetermined.
// JSON is tried first so JSON text is never reported as YAML. Input that
// parses only to a bare scalar (a number, a word, a boolean) is Undetermined.
// A leading byte order mark is ignored.
func (e *Engine) Detect(input string) Format {
	trimmed := strings.TrimSpace(strings.TrimPrefix(input, byteOrderMark))
	if trimmed == "" {
		return Undetermined
	}

	if node, err := decodeJSON(trimmed); err == nil {
		if isComposite(node) {
			return JSON
		}

		return Undetermined
	}

	if node, err := decodeYAML(trimmed); err == nil && isComposite(node) {
		return YAML
	}

	return Undetermined
}

// Prettify re-serializes input with canonical indentation.
// JSON keeps key insertion order and number literals; YAML is emitted in
// block style with comments, anchors and flow styles normalized away.
func (e *Engine) Prettify(input string, format Format) (string, error) {
	node, err := e.parse(input, format)
	if err != nil {
		return "", err
	}

	return e.render(node, format)
}

// Minify serializes JSON input without insignificant whitespace.
// It fails for anything that is not valid JSON, YAML included.
func (e *Engine) Minify(input string) (string, error) {
	node, err := decodeJSON(input)
	if err != nil {
		return "", err
	}

	return encodeJSON(node, 0)
}

// MinifyAs is Minify with the source format stated explicitly.
// Any format other than JSON fails with ErrMinifyNotSupported.
func (e *Engine) MinifyAs(input string, format Format) (string, error) {
	if format != JSON {
		return "", newFormatError(format, 0, ErrMinifyNotSupported)
	}

	return e.Minify(input)
}

// Convert parses input as from and serializes it as the other format:
// JSON becomes block-style YAML, YAML becomes pretty JSON.
// It returns the converted text and its format.
func (e *Engine) Convert(input string, from Format) (string, Format, error) {
	node, err := e.parse(input, from)
	if err != nil {
		return "", Undetermined, err
	}

	to := from.Counterpart()

	output, err := e.render(node, to)
	if err != nil {
		return "", Undetermined, err
	}

	return output, to, nil
}

// ToJSON parses input as format and returns it as compact JSON.
func (e *Engine) ToJSON(input string, format Format) (string, error) {
	node, err := e.parse(input, format)
	if err != nil {
		return "", err
	}

	return encodeJSON(node, 0)
}

// Validate parses input as format and reports the outcome.
// It never returns an error: failures are described by the result.
func (e *Engine) Validate(input string, format Format) ValidationResult {
	_, err := e.parse(input, format)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	result := ValidationResult{ErrorMessage: err.Error()}

	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		result.ErrorMessage = formatErr.Message
		result.LineNumber = formatErr.Line
	}

	return result
}

func (e *Engine) parse(input string, format Format) (*yaml.Node, error) {
	switch format {
	case JSON:
		return decodeJSON(input)
	case YAML:
		return decodeYAML(input)
	default:
		return nil, newFormatError(format, 0, ErrUnsupportedFormat)
	}
}

func (e *Engine) render(node *yaml.Node, format Format) (string, error) {
	switch format {
	case JSON:
		return encodeJSON(node, e.indent)
	case YAML:
		return encodeYAML(node, e.indent)
	default:
		return "", newFormatError(format, 0, ErrUnsupportedFormat)
	}
}

func isComposite(node *yaml.Node) bool {
	return node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode
}

//nolint:gochecknoglobals // The default engine is immutable and shared by the package-level helpers.
var defaultEngine = New()

// Detect classifies input with the default engine.
func Detect(input string) Format {
	return defaultEngine.Detect(input)
}

// Prettify re-serializes input with the default engine.
func Prettify(input string, format Format) (string, error) {
	return defaultEngine.Prettify(input, format)
}

// Minify compacts JSON input with the default engine.
func Minify(input string) (string, error) {
	return defaultEngine.Minify(input)
}

// Convert converts input with the default engine.
func Convert(input string, from Format) (string, Format, error) {
	return defaultEngine.Convert(input, from)
}

// Validate validates input with the default engine.
func Validate(input string, format Format) ValidationResult {
	return defaultEngine.Validate(input, format)
}
