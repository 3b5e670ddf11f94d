/*
Package script replays YAML operation scripts against a Node tree.

A script is a list of operations addressed by dotted paths:

	ops:
	  - op: set
	    path: user.name
	    value: grace
	  - op: add
	    path: user.tags
	    value: admin
	  - op: remove
	    path: user.tags.0
	  - op: replace
	    path: user
	    value: {name: ada}
	  - op: reset
	    path: user

Mapping and sequence values are wrapped into Nodes before they are stored.
*/
package script
