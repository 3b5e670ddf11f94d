package nerv

import (
	"github.com/aretw0/nerv/pkg/model"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Node is the observable model type.
type Node = model.Node

// New wraps data into a Node. A *Node is returned unchanged; a []any
// becomes a sequence Node; anything else becomes a mapping Node whose
// defaults are merged under data and restored by Reset.
func New(data any, defaults map[string]any, opts ...model.Option) (*Node, error) {
	switch d := data.(type) {
	case *Node:
		return d, nil
	case []any:
		return model.NewList(d, opts...)
	}
	if defaults != nil {
		opts = append([]model.Option{model.WithDefaults(defaults)}, opts...)
	}
	return model.NewMap(data, opts...)
}

// FromTree recursively wraps nested map[string]any and []any data into Nodes.
func FromTree(data any, opts ...model.Option) (*Node, error) {
	return model.FromTree(data, opts...)
}

// Model starts a builder for a family of mapping Nodes.
func Model() *model.Builder {
	return model.NewModel()
}

// Collection starts a builder for a family of sequence Nodes.
func Collection() *model.Builder {
	return model.NewCollection()
}
