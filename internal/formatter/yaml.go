package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxExpandedNodes bounds the size of a tree after alias expansion.
const maxExpandedNodes = 1 << 20

//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var yamlLinePattern = regexp.MustCompile(`line (\d+):\s*`)

// knownScalarTags are the tags kept as-is when a tree is normalized.
//
//nolint:gochecknoglobals // This is an immutable set used as a constant.
var knownScalarTags = map[string]struct{}{
	tagNull:      {},
	tagBool:      {},
	tagStr:       {},
	tagInt:       {},
	tagFloat:     {},
	tagTimestamp: {},
	tagBinary:    {},
}

// decodeYAML parses a single YAML document and returns its normalized root node.
// An empty stream decodes to a null scalar.
func decodeYAML(input string) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(strings.NewReader(input))

	var document yaml.Node

	err := decoder.Decode(&document)
	if errors.Is(err, io.EOF) {
		return newScalar(tagNull, "null"), nil
	}

	if err != nil {
		return nil, yamlFormatError(err)
	}

	var extra yaml.Node
	if err = decoder.Decode(&extra); err == nil {
		return nil, newFormatError(YAML, extra.Line, ErrMultipleDocuments)
	} else if !errors.Is(err, io.EOF) {
		return nil, yamlFormatError(err)
	}

	root := &document
	if document.Kind == yaml.DocumentNode {
		if len(document.Content) == 0 {
			return newScalar(tagNull, "null"), nil
		}

		root = document.Content[0]
	}

	n := &normalizer{ancestors: make(map[*yaml.Node]struct{})}

	return n.normalize(root)
}

// yamlFormatError converts a parser error into a FormatError.
// The parser only reports positions inside its message, so the line is
// recovered from the "line N:" fragment.
func yamlFormatError(err error) *FormatError {
	message := strings.TrimPrefix(err.Error(), "yaml: ")

	line := 0
	if match := yamlLinePattern.FindStringSubmatchIndex(message); match != nil {
		line, _ = strconv.Atoi(message[match[2]:match[3]])

		if match[0] == 0 {
			message = message[match[1]:]
		}
	}

	return &FormatError{
		Format:  YAML,
		Message: message,
		Line:    line,
		Err:     err,
	}
}

// normalizer rebuilds a parsed tree without comments, styles, anchors or
// aliases, checking mapping keys for duplicates on the way.
type normalizer struct {
	ancestors map[*yaml.Node]struct{}
	nodes     int
}

func (n *normalizer) normalize(node *yaml.Node) (*yaml.Node, error) {
	n.nodes++
	if n.nodes > maxExpandedNodes {
		return nil, newFormatError(YAML, node.Line, ErrDocumentTooLarge)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return newScalar(tagNull, "null"), nil
		}

		return n.normalize(node.Content[0])
	case yaml.AliasNode:
		if _, seen := n.ancestors[node.Alias]; seen {
			return nil, newFormatError(YAML, node.Line, fmt.Errorf("%w: *%s", ErrRecursiveAlias, node.Value))
		}

		return n.normalize(node.Alias)
	case yaml.MappingNode:
		return n.normalizeMapping(node)
	case yaml.SequenceNode:
		return n.normalizeSequence(node)
	default:
		return normalizeScalar(node), nil
	}
}

func (n *normalizer) enter(node *yaml.Node) func() {
	n.ancestors[node] = struct{}{}

	return func() {
		delete(n.ancestors, node)
	}
}

func (n *normalizer) normalizeSequence(node *yaml.Node) (*yaml.Node, error) {
	defer n.enter(node)()

	sequence := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Tag:     tagSeq,
		Line:    node.Line,
		Column:  node.Column,
		Content: make([]*yaml.Node, 0, len(node.Content)),
	}

	for _, item := range node.Content {
		normalized, err := n.normalize(item)
		if err != nil {
			return nil, err
		}

		sequence.Content = append(sequence.Content, normalized)
	}

	return sequence, nil
}

func (n *normalizer) normalizeMapping(node *yaml.Node) (*yaml.Node, error) {
	defer n.enter(node)()

	mapping := &yaml.Node{
		Kind:   yaml.MappingNode,
		Tag:    tagMap,
		Line:   node.Line,
		Column: node.Column,
	}

	explicit := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if isMergeKey(key) || key.Kind != yaml.ScalarNode {
			continue
		}

		identity := keyIdentity(key)
		if _, exists := explicit[identity]; exists {
			return nil, newFormatError(YAML, key.Line, fmt.Errorf("%w %q", ErrDuplicateKey, key.Value))
		}

		explicit[identity] = struct{}{}
	}

	merged := make(map[string]struct{})

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if isMergeKey(key) {
			if err := n.merge(mapping, value, explicit, merged); err != nil {
				return nil, err
			}

			continue
		}

		normalizedKey, err := n.normalize(key)
		if err != nil {
			return nil, err
		}

		normalizedValue, err := n.normalize(value)
		if err != nil {
			return nil, err
		}

		mapping.Content = append(mapping.Content, normalizedKey, normalizedValue)
	}

	return mapping, nil
}

// merge inlines the pairs of a "<<" value into mapping. Keys given explicitly
// in the mapping win over merged ones, and earlier merge sources win over later ones.
func (n *normalizer) merge(mapping, source *yaml.Node, explicit, merged map[string]struct{}) error {
	for source.Kind == yaml.AliasNode {
		source = source.Alias
	}

	switch source.Kind {
	case yaml.SequenceNode:
		for _, item := range source.Content {
			if err := n.merge(mapping, item, explicit, merged); err != nil {
				return err
			}
		}

		return nil
	case yaml.MappingNode:
		if _, seen := n.ancestors[source]; seen {
			return newFormatError(YAML, source.Line, ErrRecursiveAlias)
		}

		normalized, err := n.normalizeMapping(source)
		if err != nil {
			return err
		}

		for i := 0; i+1 < len(normalized.Content); i += 2 {
			key := normalized.Content[i]
			identity := keyIdentity(key)

			if _, exists := explicit[identity]; exists {
				continue
			}

			if _, exists := merged[identity]; exists {
				continue
			}

			merged[identity] = struct{}{}
			mapping.Content = append(mapping.Content, key, normalized.Content[i+1])
		}

		return nil
	default:
		return newFormatError(YAML, source.Line, errors.New("merge value must be a mapping or a sequence of mappings"))
	}
}

// keyIdentity identifies a scalar key by its resolved tag and value,
// so 1 and "1" differ while ~ and null are the same key.
func keyIdentity(key *yaml.Node) string {
	tag := key.ShortTag()
	if _, known := knownScalarTags[tag]; !known {
		tag = tagStr
	}

	switch tag {
	case tagNull:
		return tagNull
	case tagBool, tagInt, tagFloat:
		var value any
		if err := key.Decode(&value); err == nil {
			return tag + " " + fmt.Sprint(value)
		}
	}

	return tag + " " + key.Value
}

func isMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.Value == mergeKey && key.ShortTag() == tagMerge
}

func normalizeScalar(node *yaml.Node) *yaml.Node {
	tag := node.ShortTag()
	if _, known := knownScalarTags[tag]; !known {
		tag = tagStr
	}

	if tag == tagStr {
		normalized := newStringScalar(node.Value)
		normalized.Line, normalized.Column = node.Line, node.Column

		return normalized
	}

	return &yaml.Node{
		Kind:   yaml.ScalarNode,
		Tag:    tag,
		Value:  node.Value,
		Line:   node.Line,
		Column: node.Column,
	}
}

// encodeYAML renders node as a block-style YAML document.
func encodeYAML(node *yaml.Node, indent int) (string, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)

	if err := encoder.Encode(node); err != nil {
		return "", asFormatError(YAML, err)
	}

	if err := encoder.Close(); err != nil {
		return "", asFormatError(YAML, err)
	}

	return buf.String(), nil
}
