package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("name"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("_"))
	assert.False(t, IsIdentifier("type"))
	assert.False(t, IsIdentifier("first-name"))
	assert.False(t, IsIdentifier(""))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "Value_of_Person", LastSegment("example.Value_of_Person"))
	assert.Equal(t, "Value_of_Person", LastSegment("github.com/acme/shapes.Value_of_Person"))
	assert.Equal(t, "Plain", LastSegment("Plain"))
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "shapes", PkgAlias("flatstruct/examples/shapes"))
	assert.Empty(t, PkgAlias(""))
}

func TestFirst(t *testing.T) {
	v, ok := First([]int{3, 4})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
	assert.True(t, IsEmpty([]string{}))
}
