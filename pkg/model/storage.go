package model

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Shape is the container shape of a Node, fixed at construction.
type Shape int

const (
	ShapeMap Shape = iota
	ShapeList
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "map"
}

// OrderedMap is the insertion-ordered mapping used for mapping storage and defaults.
type OrderedMap = orderedmap.OrderedMap[string, any]

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return orderedmap.New[string, any]()
}

// storage holds the members of a Node. The two implementations differ only in
// how keys address members and how bulk replacement and removal behave.
type storage interface {
	shape() Shape
	// key canonicalizes k; write reports whether k must be a writable position.
	key(k string, write bool) (string, error)
	get(k string) (any, bool)
	put(k string, v any)
	del(k string)
	each(fn func(k string, v any) bool)
	len() int
	// raw returns a shallow copy of the members as map[string]any or []any.
	raw() any
	replace(data any, defaults *OrderedMap) error
	reset(defaults *OrderedMap)
	empty() any
}

func newStorage(shape Shape) storage {
	if shape == ShapeList {
		return &listStorage{}
	}
	return &mapStorage{members: NewOrderedMap()}
}

type mapStorage struct {
	members *OrderedMap
}

func (s *mapStorage) shape() Shape { return ShapeMap }

func (s *mapStorage) key(k string, write bool) (string, error) {
	return k, nil
}

func (s *mapStorage) get(k string) (any, bool) {
	return s.members.Get(k)
}

func (s *mapStorage) put(k string, v any) {
	s.members.Set(k, v)
}

func (s *mapStorage) del(k string) {
	s.members.Delete(k)
}

func (s *mapStorage) each(fn func(k string, v any) bool) {
	for pair := s.members.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (s *mapStorage) len() int {
	return s.members.Len()
}

func (s *mapStorage) raw() any {
	out := make(map[string]any, s.members.Len())
	s.each(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

func (s *mapStorage) replace(data any, defaults *OrderedMap) error {
	next := copyOrdered(defaults)
	switch d := data.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(d)) {
			next.Set(k, d[k])
		}
	case *OrderedMap:
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			next.Set(pair.Key, pair.Value)
		}
	default:
		return fmt.Errorf("%w: cannot replace a map with %T", ErrShapeMismatch, data)
	}
	s.members = next
	return nil
}

func (s *mapStorage) reset(defaults *OrderedMap) {
	s.members = copyOrdered(defaults)
}

func (s *mapStorage) empty() any {
	return make(map[string]any, s.members.Len())
}

type listStorage struct {
	items []any
}

func (s *listStorage) shape() Shape { return ShapeList }

func (s *listStorage) key(k string, write bool) (string, error) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 {
		return "", fmt.Errorf("%w: %q is not a sequence index", ErrInvalidKey, k)
	}
	if write && i > len(s.items) {
		return "", fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(s.items))
	}
	return strconv.Itoa(i), nil
}

func (s *listStorage) index(k string) (int, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 || i >= len(s.items) {
		return 0, false
	}
	return i, true
}

func (s *listStorage) get(k string) (any, bool) {
	i, ok := s.index(k)
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

func (s *listStorage) put(k string, v any) {
	i, err := strconv.Atoi(k)
	if err != nil {
		return
	}
	if i == len(s.items) {
		s.items = append(s.items, v)
		return
	}
	s.items[i] = v
}

func (s *listStorage) del(k string) {
	i, ok := s.index(k)
	if !ok {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
}

func (s *listStorage) each(fn func(k string, v any) bool) {
	for i := 0; i < len(s.items); i++ {
		if !fn(strconv.Itoa(i), s.items[i]) {
			return
		}
	}
}

func (s *listStorage) len() int {
	return len(s.items)
}

func (s *listStorage) raw() any {
	return slices.Clone(s.items)
}

func (s *listStorage) replace(data any, defaults *OrderedMap) error {
	d, ok := data.([]any)
	if !ok {
		return fmt.Errorf("%w: cannot replace a list with %T", ErrShapeMismatch, data)
	}
	s.items = append(s.items[:0:0], d...)
	return nil
}

func (s *listStorage) reset(defaults *OrderedMap) {
	s.items = nil
}

func (s *listStorage) empty() any {
	return make([]any, 0, len(s.items))
}

func copyOrdered(src *OrderedMap) *OrderedMap {
	out := NewOrderedMap()
	if src == nil {
		return out
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}
