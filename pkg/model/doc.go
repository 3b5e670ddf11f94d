/*
Package model implements the observable Node: a mapping or sequence of values
that turns writes into typed change events and bubbles the changes of nested
Nodes up to every ancestor.

# Events

Every scalar write fires a named event followed by the generic one, on the
Node's own hub:

	"<key>:new"     first write of a key        (argument: Change)
	"<key>:update"  write over an existing key  (argument: Change)
	"<key>:delete"  Remove                      (argument: Change)
	"change"        after any of the above, and after SetAll/Reset

When a Node is stored under a key of a parent, the parent forwards the child's
"change" into its own "change", tagged with a Bubble holding the key path, and
into "<key>:update" when the child itself was mutated. Renaming happens for one
hop only: a change three levels down produces "<key>:update" on the immediate
parent and only "change" on the ancestors above it.

# Registration

The parent keeps an explicit table of (child, key) registrations, each holding
the two forwarding subscriptions installed on the child's hub. Scalar writes
touch only the affected key; SetAll and Reset unregister everything, replace
storage and register again.

# Errors

Operations are best-effort and not transactional. A member that is an object
but neither a Node nor an opaque Ref fails with ErrInvalidMember after it has
been stored; no event fires for that operation and nothing is rolled back.

# Families

Builders produce Factories of preconfigured Nodes:

	todo, err := model.NewModel().
		Defaults(map[string]any{"done": false}).
		Method("toggle", func(n *model.Node, _ ...any) (any, error) {
			return nil, n.Set("done", !n.Get("done").(bool))
		}).
		Build()
	item, err := todo.New(map[string]any{"title": "write docs"})
*/
package model
