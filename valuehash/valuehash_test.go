package valuehash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull((*string)(nil)))
	assert.True(t, IsNull([]byte(nil)))
	assert.False(t, IsNull([]byte{}))
	assert.False(t, IsNull(ptr("")))
	assert.False(t, IsNull(0))
}

func TestEqual_ContainedValues(t *testing.T) {
	assert.True(t, Equal(ptr("John"), ptr("John")))
	assert.False(t, Equal(ptr("John"), ptr("Jane")))
	assert.True(t, Equal([]byte("ab"), []byte("ab")))
	assert.False(t, Equal([]byte("ab"), ptr("ab")))

	now := time.Now()
	assert.True(t, Equal(ptr(now), ptr(now.UTC())))

	assert.True(t, Equal(map[string]int{"a": 1}, map[string]int{"a": 1}))
	assert.False(t, Equal(map[string]int{"a": 1}, map[string]int{"a": 2}))
}

func TestHash_ConsistentWithEqual(t *testing.T) {
	pairs := [][2]any{
		{ptr("John"), ptr("John")},
		{[]byte("xyz"), []byte("xyz")},
		{map[string]int{"b": 2, "a": 1}, map[string]int{"a": 1, "b": 2}},
		{[]int{1, 2, 3}, []int{1, 2, 3}},
		{ptr(struct{ N int }{7}), ptr(struct{ N int }{7})},
	}

	for _, p := range pairs {
		assert.True(t, Equal(p[0], p[1]), "%v", p)
		assert.Equal(t, Hash(p[0]), Hash(p[1]), "%v", p)
	}

	now := time.Now()
	assert.Equal(t, Hash(ptr(now)), Hash(ptr(now.UTC())))
	assert.Equal(t, Hash(ptr("s")), Hash("s"))
}

func TestHash_NullIsZero(t *testing.T) {
	assert.Equal(t, int32(0), Hash(nil))
	assert.Equal(t, int32(0), Hash((*string)(nil)))
	assert.Equal(t, int32(0), Hash([]byte(nil)))
}

func TestMarker(t *testing.T) {
	a, b := ptr("same"), ptr("same")

	assert.Equal(t, "null", Marker((*string)(nil)))
	assert.Equal(t, Marker(a), Marker(a))
	assert.NotEqual(t, Marker(a), Marker(b))
	assert.NotContains(t, Marker(a), "same")
	assert.Equal(t, "<int>", Marker(42))
}

func TestBool(t *testing.T) {
	assert.Equal(t, int32(1), Bool(true))
	assert.Equal(t, int32(0), Bool(false))
}
