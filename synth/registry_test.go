package synth

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatstruct/kind"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	x, err := r.Register("x", kind.KindInt32, false)
	require.NoError(t, err)
	assert.Equal(t, 0, x.Index)

	y, err := r.Register("y", kind.KindString, true)
	require.NoError(t, err)
	assert.Equal(t, FieldSpec{Name: "y", Kind: kind.KindString, Volatile: true, Index: 1}, y)

	_, err = r.Register("x", kind.KindInt64, false)
	require.Error(t, err)

	got, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, kind.KindInt32, got.Kind, "a rejected registration leaves the first one intact")

	_, ok = r.Lookup("z")
	assert.False(t, ok)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"x", "y"}, r.Names())
	assert.Equal(t, []FieldSpec{x, y}, slices.Collect(r.All()))
}
