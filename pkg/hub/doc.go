/*
Package hub provides the synchronous publish/subscribe channel used by every Node.

A Hub maps event names to an ordered list of bindings. Firing an event runs the
bound handlers inline, in binding order, before Fire returns. Besides plain
handlers, a binding can forward into another hub through a Promise: the
Promise returned by Hub.Promise is cached per event name, which gives forwarding
bindings a stable identity so they can be removed exactly.

	parent := hub.New()
	child := hub.New()

	// child "change" becomes parent "items:update"
	sub := child.Pipe("change", parent.Promise("items:update"))
	child.Fire("change")
	sub.Unbind()
*/
package hub
