package model_test

import (
	"testing"

	"github.com/aretw0/nerv/internal/testutils"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBubble_DirectParent(t *testing.T) {
	child := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"child": child})
	rec := testutils.Record(parent)

	require.NoError(t, child.Set("x", 1))

	assert.Equal(t, []string{"child:update", "change"}, rec.Events)
	_, ok := model.ChangeOf(rec.Args[0])
	assert.False(t, ok, "a bubbled update carries no descriptor")

	b, ok := model.BubbleOf(rec.Args[1])
	require.True(t, ok)
	assert.Equal(t, []string{"child"}, b.Path)
}

func TestBubble_RenamesOneHop(t *testing.T) {
	c := mustMap(t, nil)
	p := mustMap(t, map[string]any{"c": c})
	g := mustMap(t, map[string]any{"p": p})

	pRec := testutils.Record(p)
	gRec := testutils.Record(g)

	require.NoError(t, c.Set("x", 1))

	assert.Equal(t, []string{"c:update", "change"}, pRec.Events)
	assert.Equal(t, []string{"change"}, gRec.Events, "the grandparent sees only change")

	b, ok := model.BubbleOf(gRec.Args[0])
	require.True(t, ok)
	assert.Equal(t, []string{"p", "c"}, b.Path)

	gRec.Reset()
	require.NoError(t, p.Set("y", 2))
	assert.Equal(t, []string{"p:update", "change"}, gRec.Events)
}

func TestBubble_ReachesEveryAncestor(t *testing.T) {
	leaf := mustList(t, nil)
	tree, err := model.FromTree(map[string]any{
		"a": map[string]any{
			"b": map[string]any{},
		},
	})
	require.NoError(t, err)

	b, err := tree.Descend("a.b")
	require.NoError(t, err)
	require.NoError(t, b.Set("leaf", leaf))

	a, err := tree.Descend("a")
	require.NoError(t, err)

	paths := map[string][]string{}
	for name, n := range map[string]*model.Node{"tree": tree, "a": a, "b": b} {
		n.Hub().Bind(model.EventChange, func(args ...any) {
			bubble, _ := model.BubbleOf(args)
			paths[name] = bubble.Path
		})
	}

	require.NoError(t, leaf.Add("x"))

	assert.Equal(t, map[string][]string{
		"b":    {"leaf"},
		"a":    {"b", "leaf"},
		"tree": {"a", "b", "leaf"},
	}, paths)
}

func TestRegister_NoDoubleRegistration(t *testing.T) {
	child := mustMap(t, nil)
	parent := mustMap(t, nil)

	require.NoError(t, parent.Set("child", child))
	require.NoError(t, parent.Set("child", child))
	require.NoError(t, parent.SetAll(map[string]any{"child": child}))

	assert.Equal(t, 1, parent.Watching())
	assert.Equal(t, 2, child.Hub().Count(model.EventChange), "one update and one change forward")

	rec := testutils.Record(parent)
	require.NoError(t, child.Set("x", 1))
	assert.Equal(t, []string{"child:update", "change"}, rec.Events)
}

func TestRegister_SameChildUnderTwoKeys(t *testing.T) {
	child := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"left": child, "right": child})
	rec := testutils.Record(parent)

	assert.Equal(t, 2, parent.Watching())

	require.NoError(t, child.Set("x", 1))
	assert.ElementsMatch(t, []string{"left:update", "change", "right:update", "change"}, rec.Events)

	require.NoError(t, parent.Remove("left"))
	assert.Equal(t, 1, parent.Watching())
	assert.Equal(t, 2, child.Hub().Count(model.EventChange))
}

func TestUnregister_Remove(t *testing.T) {
	child := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"child": child})

	require.NoError(t, parent.Remove("child"))
	assert.Equal(t, 0, parent.Watching())
	assert.Equal(t, 0, child.Hub().Count(model.EventChange))

	rec := testutils.Record(parent)
	require.NoError(t, child.Set("x", 1))
	assert.Empty(t, rec.Events)
}

func TestUnregister_Overwrite(t *testing.T) {
	child := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"child": child})

	require.NoError(t, parent.Set("child", "scalar"))
	assert.Equal(t, 0, parent.Watching())
	assert.Equal(t, 0, child.Hub().Count(model.EventChange))

	rec := testutils.Record(parent)
	require.NoError(t, child.Set("x", 1))
	assert.Empty(t, rec.Events)
}

func TestUnregister_ReplaceWithOtherNode(t *testing.T) {
	oldChild := mustMap(t, nil)
	newChild := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"child": oldChild})
	rec := testutils.Record(parent)

	require.NoError(t, parent.Set("child", newChild))
	assert.Equal(t, []string{"child:update", "change"}, rec.Events)

	rec.Reset()
	require.NoError(t, oldChild.Set("x", 1))
	assert.Empty(t, rec.Events)

	require.NoError(t, newChild.Set("x", 1))
	assert.Equal(t, []string{"child:update", "change"}, rec.Events)
}

func TestRegister_SetAllAndReset(t *testing.T) {
	first := mustMap(t, nil)
	second := mustMap(t, nil)
	parent := mustMap(t, map[string]any{"first": first})

	require.NoError(t, parent.SetAll(map[string]any{"second": second}))
	assert.Equal(t, 1, parent.Watching())
	assert.Equal(t, 0, first.Hub().Count(model.EventChange))
	assert.Equal(t, 2, second.Hub().Count(model.EventChange))

	require.NoError(t, parent.Reset())
	assert.Equal(t, 0, parent.Watching())
	assert.Equal(t, 0, second.Hub().Count(model.EventChange))
}

func TestRegister_DefaultsHoldingNode(t *testing.T) {
	shared := mustMap(t, nil)
	parent := mustMap(t, nil, model.WithDefaults(map[string]any{"shared": shared}))
	rec := testutils.Record(parent)

	assert.Equal(t, 1, parent.Watching())

	require.NoError(t, shared.Set("x", 1))
	assert.Equal(t, []string{"shared:update", "change"}, rec.Events)

	require.NoError(t, parent.Reset())
	assert.Equal(t, 1, parent.Watching())
	assert.Equal(t, 2, shared.Hub().Count(model.EventChange))
}

func TestRegister_Cycles(t *testing.T) {
	a := mustMap(t, nil)
	b := mustMap(t, nil)
	require.NoError(t, a.Set("b", b))

	err := b.Set("a", a)
	assert.ErrorIs(t, err, model.ErrCycle)
	assert.False(t, b.Has("a"))

	assert.ErrorIs(t, a.Set("self", a), model.ErrCycle)
	assert.ErrorIs(t, b.SetAll(map[string]any{"a": a}), model.ErrCycle)
	assert.ErrorIs(t, a.Set("b", a), model.ErrCycle)

	got, ok := a.Child("b")
	require.True(t, ok, "the previous member is restored after a rejected write")
	assert.Same(t, b, got)
	assert.Equal(t, 1, a.Watching())
}
