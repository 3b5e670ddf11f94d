package model

import (
	"fmt"
	"strconv"
)

// Add appends value to a sequence Node, firing "<len>:new" and "change".
func (n *Node) Add(value any) error {
	if n.Shape() != ShapeList {
		return fmt.Errorf("%w: add on a %s", ErrShapeMismatch, n.Shape())
	}
	return n.Set(indexKey(n.Len()), value)
}

// At returns the resolved value at index i of a sequence Node.
func (n *Node) At(i int) any {
	return n.Get(indexKey(i))
}

// SetAt writes value at index i. i may equal Len() to append.
func (n *Node) SetAt(i int, value any) error {
	return n.Set(indexKey(i), value)
}

// RemoveAt removes index i, shifting the following members down.
func (n *Node) RemoveAt(i int) error {
	return n.Remove(indexKey(i))
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}

func indexOf(key string) (int, error) {
	return strconv.Atoi(key)
}
