package model

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Builder collects the configuration of a Node family.
type Builder struct {
	shape    Shape
	defaults any
	getters  map[string]Getter
	setters  map[string]Setter
	methods  map[string]Method
	logger   *slog.Logger
}

// NewModel starts a builder for mapping-shaped Nodes.
func NewModel() *Builder {
	return newBuilder(ShapeMap)
}

// NewCollection starts a builder for sequence-shaped Nodes.
func NewCollection() *Builder {
	return newBuilder(ShapeList)
}

func newBuilder(shape Shape) *Builder {
	return &Builder{
		shape:   shape,
		getters: make(map[string]Getter),
		setters: make(map[string]Setter),
		methods: make(map[string]Method),
	}
}

// Defaults sets the family defaults: a map[string]any, an *OrderedMap, or a
// struct decoded with mapstructure.
func (b *Builder) Defaults(v any) *Builder {
	b.defaults = v
	return b
}

// Getter adds a getter for key.
func (b *Builder) Getter(key string, fn Getter) *Builder {
	b.getters[key] = fn
	return b
}

// Setter adds a setter for key.
func (b *Builder) Setter(key string, fn Setter) *Builder {
	b.setters[key] = fn
	return b
}

// Method adds an extra method callable with Node.Call.
func (b *Builder) Method(name string, fn Method) *Builder {
	b.methods[name] = fn
	return b
}

// Logger sets the logger given to every Node of the family.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build freezes the configuration into a Factory. Later changes to the
// Builder do not affect it.
func (b *Builder) Build() (*Factory, error) {
	defaults, err := decodeDefaults(b.defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to decode defaults: %w", err)
	}
	if b.shape == ShapeList && defaults.Len() > 0 {
		return nil, fmt.Errorf("%w: defaults require a map shape", ErrShapeMismatch)
	}
	return &Factory{
		shape:    b.shape,
		defaults: defaults,
		getters:  maps.Clone(b.getters),
		setters:  maps.Clone(b.setters),
		methods:  maps.Clone(b.methods),
		logger:   b.logger,
	}, nil
}

// Factory produces preconfigured Nodes of one family.
type Factory struct {
	shape    Shape
	defaults *OrderedMap
	getters  map[string]Getter
	setters  map[string]Setter
	methods  map[string]Method
	logger   *slog.Logger
}

// Shape returns the shape of the Nodes the factory builds.
func (f *Factory) Shape() Shape {
	return f.shape
}

// New returns a Node of the family holding data. A Node already built by f is
// returned unchanged.
func (f *Factory) New(data any) (*Node, error) {
	if n, ok := data.(*Node); ok && f.Is(n) {
		return n, nil
	}

	opts := []Option{WithOrderedDefaults(f.defaults), func(n *Node) {
		n.factory = f
		maps.Copy(n.getters, f.getters)
		maps.Copy(n.setters, f.setters)
		maps.Copy(n.methods, f.methods)
	}}
	if f.logger != nil {
		opts = append(opts, WithLogger(f.logger))
	}
	return New(f.shape, data, opts...)
}

// Is reports whether n was built by f.
func (f *Factory) Is(n *Node) bool {
	return n != nil && n.factory == f
}

func decodeDefaults(v any) (*OrderedMap, error) {
	switch d := v.(type) {
	case nil:
		return NewOrderedMap(), nil
	case *OrderedMap:
		return copyOrdered(d), nil
	case map[string]any:
		om := NewOrderedMap()
		for _, k := range slices.Sorted(maps.Keys(d)) {
			om.Set(k, d[k])
		}
		return om, nil
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: defaults must be a map or struct, got %T", ErrShapeMismatch, v)
	}
	var m map[string]any
	if err := mapstructure.Decode(v, &m); err != nil {
		return nil, err
	}
	om := NewOrderedMap()
	for i := 0; i < rv.NumField(); i++ {
		name := fieldName(rv.Type().Field(i))
		if val, ok := m[name]; ok {
			om.Set(name, val)
		}
	}
	return om, nil
}

// fieldName mirrors the key mapstructure uses for a struct field.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("mapstructure")
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag != "" {
		return tag
	}
	return f.Name
}
