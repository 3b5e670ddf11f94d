package model

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Decode copies a snapshot of n into out (a pointer to a struct, map or
// slice) using mapstructure. Field names match keys case-insensitively; the
// "mapstructure" struct tag overrides them.
func (n *Node) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: func(from, to reflect.Type, data any) (any, error) {
			if ref, ok := data.(Ref); ok {
				return ref.Value(), nil
			}
			return data, nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(n.Snapshot()); err != nil {
		return fmt.Errorf("failed to decode node: %w", err)
	}
	return nil
}
