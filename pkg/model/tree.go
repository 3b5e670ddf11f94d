package model

import (
	"fmt"
	"maps"
	"slices"
)

// FromTree wraps plain nested data into Nodes: every map[string]any and
// *OrderedMap becomes a mapping Node, every []any a sequence Node. Existing
// Nodes are kept as they are. opts apply to every Node created.
func FromTree(data any, opts ...Option) (*Node, error) {
	v, err := wrapTree(data, "", opts)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: tree root must be a map or list, got %T", ErrShapeMismatch, data)
	}
	return n, nil
}

func wrapTree(data any, path string, opts []Option) (any, error) {
	switch d := data.(type) {
	case *Node:
		return d, nil
	case map[string]any:
		om := NewOrderedMap()
		for _, k := range slices.Sorted(maps.Keys(d)) {
			child, err := wrapTree(d[k], join(path, k), opts)
			if err != nil {
				return nil, err
			}
			om.Set(k, child)
		}
		return NewMap(om, opts...)
	case *OrderedMap:
		om := NewOrderedMap()
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			child, err := wrapTree(pair.Value, join(path, pair.Key), opts)
			if err != nil {
				return nil, err
			}
			om.Set(pair.Key, child)
		}
		return NewMap(om, opts...)
	case []any:
		items := make([]any, 0, len(d))
		for i, item := range d {
			child, err := wrapTree(item, join(path, indexKey(i)), opts)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}
		return NewList(items, opts...)
	}
	if KindOf(data) == KindInvalid {
		return nil, fmt.Errorf("%s: %w (%T)", path, ErrInvalidMember, data)
	}
	return data, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
