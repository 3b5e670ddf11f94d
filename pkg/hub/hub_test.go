package hub_test

import (
	"testing"

	"github.com/aretw0/nerv/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FireOrder(t *testing.T) {
	h := hub.New()
	var calls []string

	h.Bind("change", func(args ...any) { calls = append(calls, "first") })
	h.Bind("change", func(args ...any) { calls = append(calls, "second") })
	h.Bind("other", func(args ...any) { calls = append(calls, "other") })

	h.Fire("change")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestHub_Args(t *testing.T) {
	h := hub.New()
	var got []any
	h.Bind("name:new", func(args ...any) { got = args })

	h.Fire("name:new", "a", 1)
	assert.Equal(t, []any{"a", 1}, got)
}

func TestHub_FireIsChainable(t *testing.T) {
	h := hub.New()
	var calls []string
	h.Bind("a", func(args ...any) { calls = append(calls, "a") })
	h.Bind("b", func(args ...any) { calls = append(calls, "b") })

	h.Fire("a").Fire("b")
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestSubscription_UnbindIdempotent(t *testing.T) {
	h := hub.New()
	count := 0
	sub := h.Bind("change", func(args ...any) { count++ })
	require.True(t, sub.Active())

	sub.Unbind()
	sub.Unbind()
	h.Fire("change")

	assert.Equal(t, 0, count)
	assert.False(t, sub.Active())
	assert.Equal(t, 0, h.Count("change"))
}

func TestHub_UnbindDuringFire(t *testing.T) {
	h := hub.New()
	var calls []string
	var second *hub.Subscription

	h.Bind("change", func(args ...any) {
		calls = append(calls, "first")
		second.Unbind()
	})
	second = h.Bind("change", func(args ...any) { calls = append(calls, "second") })

	h.Fire("change")
	assert.Equal(t, []string{"first"}, calls)
}

func TestHub_BindDuringFire(t *testing.T) {
	h := hub.New()
	count := 0
	h.Bind("change", func(args ...any) {
		h.Bind("change", func(args ...any) { count++ })
	})

	h.Fire("change")
	assert.Equal(t, 0, count, "handlers bound during a fire wait for the next one")

	h.Fire("change")
	assert.Equal(t, 1, count)
}

func TestPromise_StableIdentity(t *testing.T) {
	h := hub.New()
	assert.Same(t, h.Promise("x:update"), h.Promise("x:update"))
	assert.NotSame(t, h.Promise("x:update"), h.Promise("change"))
	assert.Equal(t, "change", h.Promise("change").Event())
}

func TestHub_Pipe(t *testing.T) {
	parent := hub.New()
	child := hub.New()

	var got []any
	parent.Bind("items:update", func(args ...any) { got = args })

	child.Pipe("change", parent.Promise("items:update"))
	child.Fire("change", "payload")

	assert.Equal(t, []any{"payload"}, got)
}

func TestHub_Unpipe(t *testing.T) {
	parent := hub.New()
	child := hub.New()
	count := 0
	parent.Bind("change", func(args ...any) { count++ })

	child.Pipe("change", parent.Promise("items:update"))
	child.Pipe("change", parent.Promise("change"))

	assert.True(t, child.Unpipe("change", parent.Promise("change")))
	assert.False(t, child.Unpipe("change", parent.Promise("change")), "second unpipe is a no-op")
	assert.Equal(t, 1, child.Count("change"))

	child.Fire("change")
	assert.Equal(t, 0, count)
}

func TestHub_Tap(t *testing.T) {
	h := hub.New()
	var seen []string
	var order []string

	h.Bind("a:new", func(args ...any) { order = append(order, "handler") })
	tap := h.Tap(func(event string, args []any) {
		seen = append(seen, event)
		order = append(order, "tap")
	})

	h.Fire("a:new").Fire("change")
	assert.Equal(t, []string{"a:new", "change"}, seen)
	assert.Equal(t, []string{"handler", "tap", "tap"}, order)

	tap.Unbind()
	h.Fire("change")
	assert.Len(t, seen, 2)
	assert.Equal(t, "", tap.Event())
}

func TestHub_Forward(t *testing.T) {
	parent := hub.New()
	child := hub.New()

	var got [][]any
	parent.Bind("change", func(args ...any) { got = append(got, args) })

	child.Forward("change", parent.Promise("change"), func(args []any) ([]any, bool) {
		if len(args) > 0 && args[0] == "skip" {
			return nil, false
		}
		return append([]any{"from-child"}, args...), true
	})

	child.Fire("change", "skip")
	child.Fire("change", 1)

	require.Len(t, got, 1)
	assert.Equal(t, []any{"from-child", 1}, got[0])

	assert.True(t, child.Unpipe("change", parent.Promise("change")))
	assert.Equal(t, 0, child.Count("change"))
}
