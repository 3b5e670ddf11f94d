package model

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/aretw0/nerv/internal/logging"
	"github.com/aretw0/nerv/pkg/hub"
)

// Getter transforms the raw member at key on read.
type Getter func(key string, raw any) any

// Setter transforms a candidate value on write and returns the value to store.
type Setter func(key string, value any) any

// UpdateFunc computes a new value for a key from its current raw member.
type UpdateFunc func(old any) any

// ReplaceFunc computes the full dataset of a bulk replace from a shallow copy
// of the current members (map[string]any or []any).
type ReplaceFunc func(current any) any

// Method is an extra operation attached to a Node family by a Builder.
type Method func(n *Node, args ...any) (any, error)

// Node is an observable mapping or sequence of values.
// A Node is not safe for concurrent use.
type Node struct {
	store    storage
	defaults *OrderedMap
	getters  map[string]Getter
	setters  map[string]Setter
	methods  map[string]Method
	hub      *hub.Hub
	watches  map[watchKey]watch
	factory  *Factory
	logger   *slog.Logger
}

// Option configures a Node.
type Option func(*Node)

// WithDefaults sets the defaults merged under bulk data and restored by Reset.
// Keys are applied in sorted order; use WithOrderedDefaults to control it.
func WithDefaults(defaults map[string]any) Option {
	return func(n *Node) {
		om := NewOrderedMap()
		for _, k := range slices.Sorted(maps.Keys(defaults)) {
			om.Set(k, defaults[k])
		}
		n.defaults = om
	}
}

// WithOrderedDefaults sets the defaults keeping their insertion order.
func WithOrderedDefaults(defaults *OrderedMap) Option {
	return func(n *Node) {
		n.defaults = copyOrdered(defaults)
	}
}

// WithGetter installs a getter for key.
func WithGetter(key string, fn Getter) Option {
	return func(n *Node) {
		n.getters[key] = fn
	}
}

// WithSetter installs a setter for key.
func WithSetter(key string, fn Setter) Option {
	return func(n *Node) {
		n.setters[key] = fn
	}
}

// WithLogger configures a logger for the Node and its hub.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Node) {
		n.logger = logger
	}
}

// New creates a Node of the given shape. A nil data resets the Node to its
// defaults; anything else is applied with SetAll.
func New(shape Shape, data any, opts ...Option) (*Node, error) {
	n := &Node{
		store:    newStorage(shape),
		defaults: NewOrderedMap(),
		getters:  make(map[string]Getter),
		setters:  make(map[string]Setter),
		methods:  make(map[string]Method),
		watches:  make(map[watchKey]watch),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.hub = hub.New(hub.WithLogger(n.logger))

	if data == nil {
		if err := n.Reset(); err != nil {
			return nil, err
		}
		return n, nil
	}
	if err := n.SetAll(data); err != nil {
		return nil, err
	}
	return n, nil
}

// NewMap creates a mapping-shaped Node.
func NewMap(data any, opts ...Option) (*Node, error) {
	return New(ShapeMap, data, opts...)
}

// NewList creates a sequence-shaped Node.
func NewList(data any, opts ...Option) (*Node, error) {
	return New(ShapeList, data, opts...)
}

// Shape returns the container shape.
func (n *Node) Shape() Shape {
	return n.store.shape()
}

// Hub returns the Node's event channel.
func (n *Node) Hub() *hub.Hub {
	return n.hub
}

// Len returns the number of direct members.
func (n *Node) Len() int {
	return n.store.len()
}

// Keys returns the member keys in storage order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.store.len())
	n.store.each(func(k string, v any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Has reports whether key holds a member.
func (n *Node) Has(key string) bool {
	_, ok := n.store.get(key)
	return ok
}

// Member returns the raw member at key, before any getter.
func (n *Node) Member(key string) any {
	v, _ := n.store.get(key)
	return v
}

// Child returns the Node stored at key, if any.
func (n *Node) Child(key string) (*Node, bool) {
	child, ok := n.Member(key).(*Node)
	return child, ok
}

// Each calls fn for every direct member in storage order until fn returns false.
// fn receives raw members; it must not mutate the Node.
func (n *Node) Each(fn func(key string, value any) bool) {
	n.store.each(fn)
}

// Getter installs fn as the getter for key. A nil fn removes it.
func (n *Node) Getter(key string, fn Getter) {
	if fn == nil {
		delete(n.getters, key)
		return
	}
	n.getters[key] = fn
}

// Setter installs fn as the setter for key. A nil fn removes it.
func (n *Node) Setter(key string, fn Setter) {
	if fn == nil {
		delete(n.setters, key)
		return
	}
	n.setters[key] = fn
}

// On binds fn to a named event on the Node's hub.
func (n *Node) On(event string, fn hub.Handler) *hub.Subscription {
	return n.hub.Bind(event, fn)
}

// OnChange binds fn to the generic "change" event.
func (n *Node) OnChange(fn func()) *hub.Subscription {
	return n.hub.Bind(EventChange, func(args ...any) { fn() })
}

// OnKey binds fn to "<key>:<t>". Bubbled updates carry no descriptor, so fn
// receives a Change holding only Type and Name for them.
func (n *Node) OnKey(key string, t ChangeType, fn func(Change)) *hub.Subscription {
	return n.hub.Bind(EventName(key, t), func(args ...any) {
		c, ok := ChangeOf(args)
		if !ok {
			c = Change{Type: t, Name: key}
		}
		fn(c)
	})
}

// Call invokes an extra method configured on the Node's family.
func (n *Node) Call(name string, args ...any) (any, error) {
	fn, ok := n.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return fn(n, args...)
}

// Factory returns the factory that built the Node, or nil.
func (n *Node) Factory() *Factory {
	return n.factory
}
