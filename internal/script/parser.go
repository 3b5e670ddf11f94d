package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/nerv/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document holds no YAML node.
var ErrEmptyDocument = errors.New("empty document")

// Op is a single script operation.
type Op struct {
	Op    string `mapstructure:"op"`
	Path  string `mapstructure:"path"`
	Value any    `mapstructure:"value"`
}

func (o Op) String() string {
	if o.Path == "" {
		return o.Op
	}
	return o.Op + " " + o.Path
}

// LoadDocument reads a YAML (or JSON) file and returns its data with mapping
// order preserved.
func LoadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes YAML into *model.OrderedMap, []any and scalars.
func ParseDocument(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	return toValue(&doc)
}

// LoadScript reads a script file.
func LoadScript(path string) ([]Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a script: either a sequence of operations or a mapping
// holding them under "ops".
func ParseScript(data []byte) ([]Op, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	if om, ok := doc.(*model.OrderedMap); ok {
		doc, _ = om.Get("ops")
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("failed to parse script: expected a list of operations, got %T", doc)
	}

	ops := make([]Op, 0, len(items))
	for i, item := range items {
		om, ok := item.(*model.OrderedMap)
		if !ok {
			return nil, fmt.Errorf("failed to parse script: operation %d is %T, not a mapping", i, item)
		}
		fields := make(map[string]any, om.Len())
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			fields[pair.Key] = pair.Value
		}

		var op Op
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &op,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(fields); err != nil {
			return nil, fmt.Errorf("failed to parse script: operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func toValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return toValue(n.Content[0])
	case yaml.AliasNode:
		return toValue(n.Alias)
	case yaml.MappingNode:
		om := model.NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := toValue(val)
			if err != nil {
				return nil, err
			}
			om.Set(key.Value, v)
		}
		return om, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := toValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}
