package model

import "fmt"

// Get returns the resolved value at key: the getter result if one is
// installed, unwrapped through Snapshot when it is a Node. An empty key
// returns Snapshot().
func (n *Node) Get(key string) any {
	if key == "" {
		return n.Snapshot()
	}
	if k, err := n.store.key(key, false); err == nil {
		key = k
	}
	return resolve(n.member(key))
}

// Snapshot returns a fresh map[string]any or []any holding every member,
// with child Nodes recursively unwrapped. Getters are not applied.
func (n *Node) Snapshot() any {
	switch out := n.store.empty().(type) {
	case map[string]any:
		n.store.each(func(k string, v any) bool {
			out[k] = resolve(v)
			return true
		})
		return out
	case []any:
		n.store.each(func(k string, v any) bool {
			out = append(out, resolve(v))
			return true
		})
		return out
	default:
		return nil
	}
}

func (n *Node) member(key string) any {
	raw, _ := n.store.get(key)
	if fn, ok := n.getters[key]; ok {
		return fn(key, raw)
	}
	return raw
}

func resolve(v any) any {
	if child, ok := v.(*Node); ok && child != nil {
		return child.Snapshot()
	}
	return v
}

// Set writes value at key and fires "<key>:new" or "<key>:update" followed by
// "change". If value is an UpdateFunc it is called with the current raw member
// and its result is written instead.
//
// An empty key is a no-op. Writing nil over an object member keeps the member.
// Writing nil where nothing was stored fires nothing.
//
// Set is not transactional: when the stored value fails validation, it stays
// in storage, the error is returned and no event fires.
func (n *Node) Set(key string, value any) error {
	if key == "" {
		return nil
	}
	key, err := n.store.key(key, true)
	if err != nil {
		return err
	}

	oldRaw, _ := n.store.get(key)
	oldValue := n.Get(key)
	n.unregister(oldRaw, key)

	candidate := value
	switch fn := value.(type) {
	case UpdateFunc:
		candidate = fn(oldRaw)
	case func(any) any:
		candidate = fn(oldRaw)
	}

	var stored any
	if setter, ok := n.setters[key]; ok {
		stored = setter(key, candidate)
	} else {
		stored = candidate
	}
	if stored != nil {
		if child, ok := stored.(*Node); ok && child != nil && child.reaches(n) {
			n.restore(oldRaw, key)
			return fmt.Errorf("set %q: %w", key, ErrCycle)
		}
		n.store.put(key, stored)
	} else if isObject(oldRaw) {
		stored = oldRaw
	}
	if stored == nil {
		return nil
	}

	typ := ChangeUpdate
	if oldValue == nil {
		typ = ChangeNew
	}

	if err := n.register(stored, key); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	change := Change{
		Type:     typ,
		Name:     key,
		OldValue: oldValue,
		NewValue: n.Get(key),
	}
	n.hub.Fire(EventName(key, typ), change).Fire(EventChange)
	return nil
}

// SetAll replaces every member at once and fires a single "change".
//
// src is a map[string]any or *OrderedMap for mapping Nodes, a []any for
// sequence Nodes, a *Node whose members are copied, or a ReplaceFunc whose
// result is one of those. Mapping data is merged over the defaults. A nil src
// is a no-op and fires nothing. A ReplaceFunc returning nil keeps the current
// members but still fires "change".
func (n *Node) SetAll(src any) error {
	if src == nil {
		return nil
	}
	n.unregisterAll()

	data := src
	switch fn := src.(type) {
	case ReplaceFunc:
		data = fn(n.store.raw())
	case func(any) any:
		data = fn(n.store.raw())
	}
	if other, ok := data.(*Node); ok {
		data = other.store.raw()
	}

	if data != nil {
		err := n.checkCycles(data)
		if err == nil {
			err = n.store.replace(data, n.defaults)
		}
		if err != nil {
			if rerr := n.registerAll(); rerr != nil {
				n.logger.Warn("re-register after rejected replace failed", "err", rerr)
			}
			return err
		}
	}
	if err := n.registerAll(); err != nil {
		return err
	}
	n.hub.Fire(EventChange)
	return nil
}

// Remove deletes the member at key and fires "<key>:delete" followed by
// "change". Removing an absent key still fires, with a nil OldValue.
// In a sequence the following members shift down by one.
func (n *Node) Remove(key string) error {
	key, err := n.store.key(key, false)
	if err != nil {
		return err
	}

	oldValue := n.Get(key)
	oldRaw, existed := n.store.get(key)
	n.unregister(oldRaw, key)
	n.store.del(key)
	if existed && n.store.shape() == ShapeList {
		n.rekeyFrom(key)
	}

	change := Change{
		Type:     ChangeDelete,
		Name:     key,
		OldValue: oldValue,
	}
	n.hub.Fire(EventName(key, ChangeDelete), change).Fire(EventChange)
	return nil
}

// Reset replaces the members with the defaults (mapping) or nothing
// (sequence) and fires "change".
func (n *Node) Reset() error {
	n.unregisterAll()
	n.store.reset(n.defaults)
	if err := n.registerAll(); err != nil {
		return err
	}
	n.hub.Fire(EventChange)
	return nil
}

// Find returns the key of the first direct member identical to value.
func (n *Node) Find(value any) (string, bool) {
	var found string
	var ok bool
	n.store.each(func(k string, v any) bool {
		if same(v, value) {
			found, ok = k, true
			return false
		}
		return true
	})
	return found, ok
}

// Validate checks every member recursively. It fails with ErrInvalidMember
// on the first object that is neither a Node nor an opaque reference.
func (n *Node) Validate() error {
	return n.validate(map[*Node]bool{})
}

func (n *Node) validate(path map[*Node]bool) error {
	if path[n] {
		return ErrCycle
	}
	path[n] = true
	defer delete(path, n)

	var err error
	n.store.each(func(k string, v any) bool {
		err = validateMember(v, path)
		if err != nil {
			err = fmt.Errorf("%s: %w", k, err)
			return false
		}
		return true
	})
	return err
}

func validateMember(v any, path map[*Node]bool) error {
	switch KindOf(v) {
	case KindInvalid:
		return fmt.Errorf("%w (%T)", ErrInvalidMember, v)
	case KindNode:
		return v.(*Node).validate(path)
	default:
		return nil
	}
}
