package formatter

import (
	"fmt"
	"strings"

	"github.com/oshokin/docformat/internal/constants"
)

// Format classifies a text blob.
type Format uint8

const (
	// Undetermined means the input is empty or matches neither grammar unambiguously.
	Undetermined Format = iota
	// JSON is a JSON document.
	JSON
	// YAML is a YAML document.
	YAML
)

// String returns the lower-case tag of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "undetermined"
	}
}

// IsDetermined reports whether f names a concrete format.
func (f Format) IsDetermined() bool {
	return f == JSON || f == YAML
}

// Extension returns the canonical file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return constants.ExtensionJSON
	case YAML:
		return constants.ExtensionYAML
	default:
		return ""
	}
}

// Counterpart returns the format that Convert produces from f.
func (f Format) Counterpart() Format {
	switch f {
	case JSON:
		return YAML
	case YAML:
		return JSON
	default:
		return Undetermined
	}
}

// ParseFormat parses a user-supplied format tag ("json", "yaml" or "yml", case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Undetermined, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromExtension maps a file path's extension to a format.
// Unknown extensions yield Undetermined.
func FormatFromExtension(path string) Format {
	lower := strings.ToLower(path)

	switch {
	case strings.HasSuffix(lower, constants.ExtensionJSON):
		return JSON
	case strings.HasSuffix(lower, constants.ExtensionYAML), strings.HasSuffix(lower, constants.ExtensionYML):
		return YAML
	default:
		return Undetermined
	}
}
