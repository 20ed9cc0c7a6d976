package value

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a YAML document, keeping mapping keys in document order.
func DecodeYAML(data []byte, opts DecodeOptions) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return Null{}, nil // empty document
	}
	v, err := FromYAML(&doc, opts)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

// FromYAML converts a parsed yaml.Node into a Value.
//
// Timestamps tagged !!timestamp (or untagged timestamps resolved by yaml.v3)
// become DateTimeOffset regardless of DecodeOptions.ParseTimes.
func FromYAML(node *yaml.Node, opts DecodeOptions) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}
		return FromYAML(node.Content[0], opts)
	case yaml.AliasNode:
		return FromYAML(node.Alias, opts)
	case yaml.MappingNode:
		m := &Map{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			elem, err := FromYAML(node.Content[i+1], opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: key %q: %w", node.Content[i].Line, key, err)
			}
			m.Set(key, elem)
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make(Array, 0, len(node.Content))
		for i, child := range node.Content {
			elem, err := FromYAML(child, opts)
			if err != nil {
				return nil, fmt.Errorf("sequence[%d]: %w", i, err)
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(node, opts)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node, opts DecodeOptions) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			var decoded int64
			if decodeErr := node.Decode(&decoded); decodeErr != nil {
				return nil, fmt.Errorf("line %d: invalid int %q: %w", node.Line, node.Value, err)
			}
			n = decoded
		}
		return Int(n), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q: %w", node.Line, node.Value, err)
		}
		return Double(f), nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q: %w", node.Line, node.Value, err)
		}
		return DateTimeOffset{t}, nil
	default:
		return decodeString(node.Value, opts), nil
	}
}
