/*
Package nerv is a nested observable data model: a thin wrapper around plain
mapping and sequence data that turns reads and writes into tracked operations
and publishes fine-grained change events, including through arbitrarily deep
nesting.

# Concept

A Node holds primitives, opaque references and other Nodes. Every write fires
a named event ("title:new", "title:update", "title:delete") followed by the
generic "change". When a Node is stored inside another, its changes bubble up:
the direct parent fires "<key>:update" and "change", every ancestor above fires
"change".

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/nerv"
		"github.com/aretw0/nerv/pkg/model"
	)

	func main() {
		tags, err := nerv.New([]any{"go"}, nil)
		if err != nil {
			log.Fatal(err)
		}
		post, err := nerv.New(map[string]any{"title": "hello", "tags": tags}, nil)
		if err != nil {
			log.Fatal(err)
		}

		post.OnKey("tags", model.ChangeUpdate, func(c model.Change) {
			fmt.Println("tags changed:", post.Get("tags"))
		})

		if err := tags.Add("events"); err != nil {
			log.Fatal(err)
		}
	}

# Packages

  - pkg/model: the Node, its registration engine and Node families.
  - pkg/hub: the synchronous event hub every Node owns.
  - pkg/observability: Prometheus metrics for watched Nodes.
*/
package nerv
