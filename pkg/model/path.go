package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound is returned by Resolve when a path segment does not name a child Node.
var ErrPathNotFound = errors.New("path not found")

// Resolve walks a dotted path ("user.tags.0") and returns the Node owning the
// last segment together with that segment. An empty path returns n and "".
func (n *Node) Resolve(path string) (*Node, string, error) {
	if path == "" {
		return n, "", nil
	}
	segments := strings.Split(path, ".")
	cur := n
	for i, seg := range segments[:len(segments)-1] {
		child, ok := cur.Child(seg)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, strings.Join(segments[:i+1], "."))
		}
		cur = child
	}
	return cur, segments[len(segments)-1], nil
}

// Descend returns the Node at path itself.
func (n *Node) Descend(path string) (*Node, error) {
	owner, key, err := n.Resolve(path)
	if err != nil || key == "" {
		return owner, err
	}
	child, ok := owner.Child(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return child, nil
}
