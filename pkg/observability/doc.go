/*
Package observability exposes Prometheus metrics for Nodes.

A Collector taps the hub of every Node it watches and counts the fired events
by kind (new, update, delete, change). Bubbled events count on every watched
ancestor they reach.

	reg := prometheus.NewRegistry()
	c := observability.NewCollector(reg)
	sub := c.Watch(root)
	defer c.Unwatch(sub)
*/
package observability
