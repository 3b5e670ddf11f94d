package script

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aretw0/nerv/pkg/model"
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the current state of n as YAML, keeping storage order.
// Opaque references render as their formatted value.
func MarshalYAML(n *model.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(encodeNode(n)); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(n *model.Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode}
	if n.Shape() == model.ShapeList {
		out.Kind = yaml.SequenceNode
	}
	n.Each(func(key string, v any) bool {
		if out.Kind == yaml.MappingNode {
			out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key})
		}
		out.Content = append(out.Content, encodeValue(v))
		return true
	})
	return out
}

func encodeValue(v any) *yaml.Node {
	switch t := v.(type) {
	case *model.Node:
		return encodeNode(t)
	case model.Ref:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("%v", t.Value())}
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.Format(time.RFC3339Nano)}
	}
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprintf("%v", v)}
	}
	return &node
}

// Walk calls fn for n and every Node nested below it, depth first, with the
// dotted path of each. A Node stored under several keys is visited once.
func Walk(n *model.Node, fn func(path string, n *model.Node)) {
	seen := map[*model.Node]bool{}
	var walk func(path string, cur *model.Node)
	walk = func(path string, cur *model.Node) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		fn(path, cur)
		cur.Each(func(key string, v any) bool {
			if child, ok := v.(*model.Node); ok {
				walk(join(path, key), child)
			}
			return true
		})
	}
	walk("", n)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
