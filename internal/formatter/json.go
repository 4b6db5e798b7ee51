package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagNull      = "!!null"
	tagBool      = "!!bool"
	tagStr       = "!!str"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagMap       = "!!map"
	tagSeq       = "!!seq"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagMerge     = "!!merge"

	mergeKey = "<<"
)

// byteOrderMark is the UTF-8 encoded U+FEFF some editors put in front of a file.
const byteOrderMark = "\ufeff"

// jsonNumberPattern matches a number literal exactly as the JSON grammar defines it.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var jsonNumberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// decodeJSON parses JSON text into a node tree.
// Object key order is kept; a repeated key keeps the position of its first
// occurrence and the value of its last one.
func decodeJSON(input string) (*yaml.Node, error) {
	input = strings.TrimPrefix(input, byteOrderMark)

	// The scanner behind Unmarshal reports a structured byte offset on failure.
	if err := json.Unmarshal([]byte(input), new(json.RawMessage)); err != nil {
		return nil, jsonFormatError(input, err)
	}

	decoder := json.NewDecoder(strings.NewReader(input))
	decoder.UseNumber()

	node, err := readJSONValue(decoder)
	if err != nil {
		return nil, jsonFormatError(input, err)
	}

	return node, nil
}

func readJSONValue(decoder *json.Decoder) (*yaml.Node, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			return readJSONObject(decoder)
		case '[':
			return readJSONArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(value))
		}
	case string:
		return newStringScalar(value), nil
	case json.Number:
		// Numbers stay untagged so the YAML emitter resolves them the way a reader would.
		return newScalar("", value.String()), nil
	case bool:
		return newScalar(tagBool, strconv.FormatBool(value)), nil
	case nil:
		return newScalar(tagNull, "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", token)
	}
}

func readJSONObject(decoder *json.Decoder) (*yaml.Node, error) {
	var (
		mapping   = &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		positions = make(map[string]int)
	)

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}

		value, err := readJSONValue(decoder)
		if err != nil {
			return nil, err
		}

		if index, exists := positions[key]; exists {
			mapping.Content[index+1] = value

			continue
		}

		positions[key] = len(mapping.Content)
		mapping.Content = append(mapping.Content, newStringScalar(key), value)
	}

	// Consume the closing brace.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return mapping, nil
}

func readJSONArray(decoder *json.Decoder) (*yaml.Node, error) {
	sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}

	for decoder.More() {
		value, err := readJSONValue(decoder)
		if err != nil {
			return nil, err
		}

		sequence.Content = append(sequence.Content, value)
	}

	// Consume the closing bracket.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return sequence, nil
}

func newScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// newStringScalar returns a string node that is quoted whenever its plain
// form would be read back as something else, such as "42", "true" or a "<<" merge key.
func newStringScalar(value string) *yaml.Node {
	node := newScalar(tagStr, value)

	// The parser, not the resolver, turns a plain "<<" into a merge key.
	plain := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if value == mergeKey || plain.ShortTag() != tagStr {
		node.Style = yaml.DoubleQuotedStyle
	}

	return node
}

// jsonFormatError converts a decoder error into a FormatError,
// deriving the line from the structured offset when the decoder exposes one.
func jsonFormatError(input string, err error) *FormatError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newFormatError(JSON, lineAtOffset(input, syntaxErr.Offset), err)
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newFormatError(JSON, lineAtOffset(input, int64(len(input))), err)
	}

	return newFormatError(JSON, 0, err)
}

// lineAtOffset returns the 1-based line of the byte that ends at offset.
func lineAtOffset(input string, offset int64) int {
	end := int(min(max(offset-1, 0), int64(len(input))))

	return strings.Count(input[:end], "\n") + 1
}

// jsonWriter serializes a node tree as JSON.
// An empty indent produces compact output.
type jsonWriter struct {
	buf     bytes.Buffer
	strings *json.Encoder
	indent  string
}

func newJSONWriter(indent int) *jsonWriter {
	w := &jsonWriter{indent: strings.Repeat(" ", indent)}

	w.strings = json.NewEncoder(&w.buf)
	w.strings.SetEscapeHTML(false)

	return w
}

// encodeJSON renders node as JSON text without a trailing newline.
func encodeJSON(node *yaml.Node, indent int) (string, error) {
	w := newJSONWriter(indent)

	if err := w.write(node, 0); err != nil {
		return "", err
	}

	return w.buf.String(), nil
}

func (w *jsonWriter) write(node *yaml.Node, depth int) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			w.buf.WriteString("null")

			return nil
		}

		return w.write(node.Content[0], depth)
	case yaml.MappingNode:
		return w.writeMapping(node, depth)
	case yaml.SequenceNode:
		return w.writeSequence(node, depth)
	case yaml.ScalarNode:
		return w.writeScalar(node)
	case yaml.AliasNode:
		return w.write(node.Alias, depth)
	default:
		w.buf.WriteString("null")

		return nil
	}
}

func (w *jsonWriter) writeMapping(node *yaml.Node, depth int) error {
	keys, values, err := jsonMembers(node)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		w.buf.WriteString("{}")

		return nil
	}

	w.buf.WriteByte('{')

	for i, key := range keys {
		if i > 0 {
			w.buf.WriteByte(',')
		}

		w.newline(depth + 1)

		if err = w.writeString(key); err != nil {
			return err
		}

		w.buf.WriteByte(':')

		if w.indent != "" {
			w.buf.WriteByte(' ')
		}

		if err = w.write(values[i], depth+1); err != nil {
			return err
		}
	}

	w.newline(depth)
	w.buf.WriteByte('}')

	return nil
}

// jsonMembers renders the keys of a mapping as JSON object names.
// Distinct YAML keys that share a name (1 and "1") collapse the way
// repeated JSON keys do: first position, last value.
func jsonMembers(node *yaml.Node) ([]string, []*yaml.Node, error) {
	var (
		keys      = make([]string, 0, len(node.Content)/2)
		values    = make([]*yaml.Node, 0, len(node.Content)/2)
		positions = make(map[string]int, len(node.Content)/2)
	)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, err := jsonKey(node.Content[i])
		if err != nil {
			return nil, nil, err
		}

		if index, exists := positions[key]; exists {
			values[index] = node.Content[i+1]

			continue
		}

		positions[key] = len(keys)
		keys = append(keys, key)
		values = append(values, node.Content[i+1])
	}

	return keys, values, nil
}

// jsonKey returns the object name for a mapping key, spelled from its
// resolved value: "~" becomes "null" and 0x1F becomes "31".
// Only YAML input can carry keys that are not scalars.
func jsonKey(key *yaml.Node) (string, error) {
	if key.Kind == yaml.AliasNode {
		return jsonKey(key.Alias)
	}

	if key.Kind != yaml.ScalarNode {
		return "", newFormatError(YAML, key.Line, ErrNonScalarKey)
	}

	switch key.ShortTag() {
	case tagNull:
		return "null", nil
	case tagBool, tagInt, tagFloat:
		var value any
		if err := key.Decode(&value); err != nil {
			return "", newFormatError(YAML, key.Line, err)
		}

		return formatKeyValue(value), nil
	default:
		return key.Value, nil
	}
}

func formatKeyValue(value any) string {
	f, ok := value.(float64)
	if !ok {
		return fmt.Sprint(value)
	}

	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func (w *jsonWriter) writeSequence(node *yaml.Node, depth int) error {
	if len(node.Content) == 0 {
		w.buf.WriteString("[]")

		return nil
	}

	w.buf.WriteByte('[')

	for i, item := range node.Content {
		if i > 0 {
			w.buf.WriteByte(',')
		}

		w.newline(depth + 1)

		if err := w.write(item, depth+1); err != nil {
			return err
		}
	}

	w.newline(depth)
	w.buf.WriteByte(']')

	return nil
}

func (w *jsonWriter) writeScalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case tagNull:
		w.buf.WriteString("null")
	case tagBool:
		var value bool
		if err := node.Decode(&value); err != nil {
			return newFormatError(YAML, node.Line, err)
		}

		w.buf.WriteString(strconv.FormatBool(value))
	case tagInt, tagFloat:
		return w.writeNumber(node)
	default:
		// Strings, timestamps, binary and custom tags have no JSON type of their own.
		return w.writeString(node.Value)
	}

	return nil
}

func (w *jsonWriter) writeNumber(node *yaml.Node) error {
	if jsonNumberPattern.MatchString(node.Value) {
		w.buf.WriteString(node.Value)

		return nil
	}

	var value any
	if err := node.Decode(&value); err != nil {
		return newFormatError(YAML, node.Line, err)
	}

	// JSON has no NaN or infinities.
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		w.buf.WriteString("null")

		return nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return newFormatError(JSON, node.Line, err)
	}

	w.buf.Write(encoded)

	return nil
}

func (w *jsonWriter) writeString(s string) error {
	if err := w.strings.Encode(s); err != nil {
		return newFormatError(JSON, 0, err)
	}

	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)

	return nil
}

func (w *jsonWriter) newline(depth int) {
	if w.indent == "" {
		return
	}

	w.buf.WriteByte('\n')

	for range depth {
		w.buf.WriteString(w.indent)
	}
}
