package model

import (
	"fmt"

	"github.com/aretw0/nerv/pkg/hub"
)

// watchKey identifies one registration: a child Node observed under a key.
type watchKey struct {
	child *Node
	key   string
}

// watch holds the two forwarding bindings installed on the child's hub.
type watch struct {
	update *hub.Subscription
	change *hub.Subscription
}

// register validates value and, when it is a Node, forwards its "change"
// into this Node's "<key>:update" and "change". Registering the same child
// under the same key twice is a no-op.
func (n *Node) register(value any, key string) error {
	switch KindOf(value) {
	case KindInvalid:
		n.logger.Warn("invalid member", "key", key, "type", fmt.Sprintf("%T", value))
		return fmt.Errorf("%w (%T)", ErrInvalidMember, value)
	case KindNode:
	default:
		return nil
	}

	child := value.(*Node)
	if err := child.validate(map[*Node]bool{n: true}); err != nil {
		n.logger.Warn("child failed validation", "key", key, "err", err)
		return err
	}
	n.bind(child, key)
	return nil
}

func (n *Node) bind(child *Node, key string) {
	wk := watchKey{child: child, key: key}
	if _, ok := n.watches[wk]; ok {
		return
	}
	n.watches[wk] = watch{
		update: child.hub.Forward(EventChange, n.hub.Promise(EventName(key, ChangeUpdate)), directOnly),
		change: child.hub.Forward(EventChange, n.hub.Promise(EventChange), bubbleFrom(key)),
	}
	n.logger.Debug("register", "key", key)
}

// directOnly lets a child's "change" through only when the child itself was
// mutated, so "<key>:update" is renamed for one hop.
func directOnly(args []any) ([]any, bool) {
	if _, ok := BubbleOf(args); ok {
		return nil, false
	}
	return nil, true
}

// bubbleFrom tags a forwarded "change" with the path it came from.
func bubbleFrom(key string) hub.Filter {
	return func(args []any) ([]any, bool) {
		path := []string{key}
		if b, ok := BubbleOf(args); ok {
			path = append(path, b.Path...)
		}
		return []any{Bubble{Path: path}}, true
	}
}

// unregister removes the bindings installed by register. It is a no-op for
// values that are not registered under key.
func (n *Node) unregister(value any, key string) {
	child, ok := value.(*Node)
	if !ok || child == nil {
		return
	}
	wk := watchKey{child: child, key: key}
	w, ok := n.watches[wk]
	if !ok {
		return
	}
	w.update.Unbind()
	w.change.Unbind()
	delete(n.watches, wk)
	n.logger.Debug("unregister", "key", key)
}

// registerAll registers every direct member. Valid members are registered
// even after a failure; the first error is returned.
func (n *Node) registerAll() error {
	var first error
	n.store.each(func(k string, v any) bool {
		if err := n.register(v, k); err != nil && first == nil {
			first = fmt.Errorf("register %q: %w", k, err)
		}
		return true
	})
	return first
}

// unregisterAll unregisters every direct member.
func (n *Node) unregisterAll() {
	n.store.each(func(k string, v any) bool {
		n.unregister(v, k)
		return true
	})
}

// rekeyFrom moves the registrations of sequence members that shifted down
// after a removal at key, so their bubbled events name their new index.
func (n *Node) rekeyFrom(key string) {
	start, err := indexOf(key)
	if err != nil {
		return
	}
	for i := start; i < n.store.len(); i++ {
		v, _ := n.store.get(indexKey(i))
		child, ok := v.(*Node)
		if !ok {
			continue
		}
		n.unregister(child, indexKey(i+1))
		n.bind(child, indexKey(i))
	}
}

// Watching returns the number of live child registrations.
func (n *Node) Watching() int {
	return len(n.watches)
}

// restore re-installs the registration of a member that stays in place after
// a rejected write. The member was registered before, so it is not validated again.
func (n *Node) restore(value any, key string) {
	if child, ok := value.(*Node); ok && child != nil {
		n.bind(child, key)
	}
}

// reaches reports whether target is n or is nested anywhere below n.
func (n *Node) reaches(target *Node) bool {
	seen := map[*Node]bool{}
	var walk func(*Node) bool
	walk = func(cur *Node) bool {
		if cur == target {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		found := false
		cur.store.each(func(k string, v any) bool {
			if child, ok := v.(*Node); ok && child != nil && walk(child) {
				found = true
				return false
			}
			return true
		})
		return found
	}
	return walk(n)
}

// checkCycles rejects bulk data holding a Node that would contain n.
func (n *Node) checkCycles(data any) error {
	var err error
	check := func(k string, v any) bool {
		if child, ok := v.(*Node); ok && child != nil && child.reaches(n) {
			err = fmt.Errorf("%s: %w", k, ErrCycle)
			return false
		}
		return true
	}
	switch d := data.(type) {
	case map[string]any:
		for k, v := range d {
			if !check(k, v) {
				break
			}
		}
	case *OrderedMap:
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			if !check(pair.Key, pair.Value) {
				break
			}
		}
	case []any:
		for i, v := range d {
			if !check(indexKey(i), v) {
				break
			}
		}
	}
	return err
}
