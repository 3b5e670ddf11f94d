package model

import (
	"reflect"
	"time"
)

// Kind classifies a stored value.
type Kind int

const (
	KindUndefined Kind = iota // nil
	KindPrimitive             // bool, string, numbers, time.Time
	KindOpaque                // Ref
	KindNode                  // *Node
	KindInvalid               // any other object
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindPrimitive:
		return "primitive"
	case KindOpaque:
		return "opaque"
	case KindNode:
		return "node"
	default:
		return "invalid"
	}
}

// Ref wraps a value the model must store without inspecting it.
type Ref struct {
	v any
}

// Opaque wraps v so it can be stored as a member.
func Opaque(v any) Ref {
	return Ref{v: v}
}

// Value returns the wrapped value.
func (r Ref) Value() any {
	return r.v
}

// KindOf reports how v is treated when stored in a Node.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindUndefined
	case *Node:
		if t == nil {
			return KindInvalid
		}
		return KindNode
	case Ref:
		return KindOpaque
	case time.Time:
		return KindPrimitive
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return KindPrimitive
	default:
		return KindInvalid
	}
}

// isObject reports whether v is a non-primitive value.
func isObject(v any) bool {
	switch KindOf(v) {
	case KindOpaque, KindNode, KindInvalid:
		return true
	default:
		return false
	}
}

// same reports whether a and b are the identical member.
// Maps, slices and funcs are compared by reference; other uncomparable values never match.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ra, ok := a.(Ref); ok {
		rb, ok := b.(Ref)
		return ok && same(ra.Value(), rb.Value())
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
