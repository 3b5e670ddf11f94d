package model

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
)

// Diff calculates the changes between two snapshots, as returned by
// Node.Snapshot. Nested mappings and sequences are compared member by member
// and reported with dotted names; other values are compared with
// reflect.DeepEqual. A sequence that shrank reports deletions from its tail.
// If old is nil, every member of new is reported as ChangeNew.
func Diff(old, new any) []Change {
	var changes []Change
	diffValue("", old, new, &changes)
	return changes
}

func diffValue(name string, old, new any, out *[]Change) {
	switch n := new.(type) {
	case map[string]any:
		if o, ok := old.(map[string]any); ok {
			diffMap(name, o, n, out)
			return
		}
		if old == nil && name == "" {
			diffMap(name, nil, n, out)
			return
		}
	case []any:
		if o, ok := old.([]any); ok {
			diffList(name, o, n, out)
			return
		}
		if old == nil && name == "" {
			diffList(name, nil, n, out)
			return
		}
	}

	if reflect.DeepEqual(old, new) {
		return
	}
	switch {
	case old == nil:
		*out = append(*out, Change{Type: ChangeNew, Name: name, NewValue: new})
	case new == nil:
		*out = append(*out, Change{Type: ChangeDelete, Name: name, OldValue: old})
	default:
		*out = append(*out, Change{Type: ChangeUpdate, Name: name, OldValue: old, NewValue: new})
	}
}

func diffMap(name string, old, new map[string]any, out *[]Change) {
	// Check for Added or Modified
	for _, k := range slices.Sorted(maps.Keys(new)) {
		oldVal, exists := old[k]
		if !exists {
			*out = append(*out, Change{Type: ChangeNew, Name: join(name, k), NewValue: new[k]})
			continue
		}
		diffValue(join(name, k), oldVal, new[k], out)
	}

	// Check for Deletions
	for _, k := range slices.Sorted(maps.Keys(old)) {
		if _, exists := new[k]; !exists {
			*out = append(*out, Change{Type: ChangeDelete, Name: join(name, k), OldValue: old[k]})
		}
	}
}

func diffList(name string, old, new []any, out *[]Change) {
	for i, v := range new {
		key := join(name, strconv.Itoa(i))
		if i >= len(old) {
			*out = append(*out, Change{Type: ChangeNew, Name: key, NewValue: v})
			continue
		}
		diffValue(key, old[i], v, out)
	}
	for i := len(new); i < len(old); i++ {
		*out = append(*out, Change{Type: ChangeDelete, Name: join(name, strconv.Itoa(i)), OldValue: old[i]})
	}
}
