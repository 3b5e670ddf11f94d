package model_test

import (
	"testing"

	"github.com/aretw0/nerv/pkg/model"
	"github.com/stretchr/testify/require"
)

func mustMap(t *testing.T, data any, opts ...model.Option) *model.Node {
	t.Helper()
	n, err := model.NewMap(data, opts...)
	require.NoError(t, err)
	return n
}

func mustList(t *testing.T, data any, opts ...model.Option) *model.Node {
	t.Helper()
	n, err := model.NewList(data, opts...)
	require.NoError(t, err)
	return n
}
