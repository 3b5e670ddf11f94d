package model_test

import (
	"testing"

	"github.com/aretw0/nerv/internal/testutils"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodoFactory(t *testing.T) *model.Factory {
	t.Helper()
	f, err := model.NewModel().
		Defaults(map[string]any{"title": "", "done": false}).
		Getter("title", func(key string, raw any) any {
			if raw == "" {
				return "untitled"
			}
			return raw
		}).
		Method("toggle", func(n *model.Node, _ ...any) (any, error) {
			done, _ := n.Get("done").(bool)
			return !done, n.Set("done", !done)
		}).
		Build()
	require.NoError(t, err)
	return f
}

func TestFactory_Defaults(t *testing.T) {
	f := newTodoFactory(t)

	n, err := f.New(map[string]any{"title": "write docs"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "write docs", "done": false}, n.Snapshot())

	empty, err := f.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "untitled", empty.Get("title"))
	assert.Equal(t, []string{"done", "title"}, empty.Keys())
}

func TestFactory_StructDefaults(t *testing.T) {
	type settings struct {
		Theme    string `mapstructure:"theme"`
		FontSize int    `mapstructure:"font_size"`
		Beta     bool
	}

	f, err := model.NewModel().Defaults(settings{Theme: "dark", FontSize: 12}).Build()
	require.NoError(t, err)

	n, err := f.New(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"theme", "font_size", "Beta"}, n.Keys())
	assert.Equal(t, 12, n.Get("font_size"))
}

func TestFactory_BuildErrors(t *testing.T) {
	_, err := model.NewModel().Defaults(42).Build()
	assert.ErrorIs(t, err, model.ErrShapeMismatch)

	_, err = model.NewCollection().Defaults(map[string]any{"x": 1}).Build()
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
}

func TestFactory_WrapIsIdempotent(t *testing.T) {
	f := newTodoFactory(t)
	other := newTodoFactory(t)

	n, err := f.New(nil)
	require.NoError(t, err)

	again, err := f.New(n)
	require.NoError(t, err)
	assert.Same(t, n, again)
	assert.True(t, f.Is(n))
	assert.False(t, other.Is(n))
	assert.Same(t, f, n.Factory())

	copied, err := other.New(n)
	require.NoError(t, err)
	assert.NotSame(t, n, copied)
	assert.Equal(t, n.Snapshot(), copied.Snapshot())
}

func TestFactory_Method(t *testing.T) {
	f := newTodoFactory(t)
	n, err := f.New(nil)
	require.NoError(t, err)
	rec := testutils.Record(n)

	got, err := n.Call("toggle")
	require.NoError(t, err)
	assert.Equal(t, true, got)
	assert.Equal(t, true, n.Get("done"))
	assert.Equal(t, []string{"done:update", "change"}, rec.Events)

	_, err = n.Call("archive")
	assert.ErrorIs(t, err, model.ErrUnknownMethod)
}

func TestFactory_InstanceIsolation(t *testing.T) {
	f := newTodoFactory(t)
	a, err := f.New(nil)
	require.NoError(t, err)
	b, err := f.New(nil)
	require.NoError(t, err)

	a.Getter("title", nil)
	require.NoError(t, a.Set("title", "mine"))

	assert.Equal(t, "mine", a.Get("title"))
	assert.Equal(t, "untitled", b.Get("title"))

	c, err := f.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "untitled", c.Get("title"), "instance changes do not leak into the factory")
}

func TestFactory_Collection(t *testing.T) {
	f, err := model.NewCollection().Build()
	require.NoError(t, err)
	assert.Equal(t, model.ShapeList, f.Shape())

	list, err := f.New([]any{"a"})
	require.NoError(t, err)
	require.NoError(t, list.Add("b"))
	assert.Equal(t, []any{"a", "b"}, list.Snapshot())
}

func TestNode_Decode(t *testing.T) {
	type profile struct {
		Name string
		Age  int
		Tags []string
		Conn *int `mapstructure:"conn"`
	}

	port := 8080
	n, err := model.FromTree(map[string]any{
		"name": "ada",
		"age":  "36",
		"tags": []any{"math", "engines"},
	})
	require.NoError(t, err)
	require.NoError(t, n.Set("conn", model.Opaque(&port)))

	var p profile
	require.NoError(t, n.Decode(&p))
	assert.Equal(t, "ada", p.Name)
	assert.Equal(t, 36, p.Age)
	assert.Equal(t, []string{"math", "engines"}, p.Tags)
	assert.Same(t, &port, p.Conn)
}

func TestFromTree(t *testing.T) {
	n, err := model.FromTree(map[string]any{
		"user": map[string]any{
			"name": "ada",
			"tags": []any{"x", map[string]any{"k": 1}},
		},
	})
	require.NoError(t, err)

	tags, err := n.Descend("user.tags")
	require.NoError(t, err)
	assert.Equal(t, model.ShapeList, tags.Shape())

	owner, key, err := n.Resolve("user.tags.1.k")
	require.NoError(t, err)
	assert.Equal(t, "k", key)
	assert.Equal(t, 1, owner.Get(key))

	_, _, err = n.Resolve("user.missing.x")
	assert.ErrorIs(t, err, model.ErrPathNotFound)
	_, err = n.Descend("user.name")
	assert.ErrorIs(t, err, model.ErrPathNotFound)

	_, err = model.FromTree(map[string]any{"bad": struct{}{}})
	assert.ErrorIs(t, err, model.ErrInvalidMember)
	_, err = model.FromTree(3)
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
}
