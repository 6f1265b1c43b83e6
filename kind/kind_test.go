package kind_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flatstruct/kind"
)

func Example() {
	type IntEnum int

	fmt.Println(kind.FromReflectType(reflect.TypeOf(int32(0))))
	fmt.Println(kind.FromReflectType(reflect.TypeOf("")))
	fmt.Println(kind.FromReflectType(reflect.TypeOf(new(string))))
	fmt.Println(kind.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(kind.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(kind.Parse("Long"))
	// Output:
	// Int32
	// String
	// String
	// Time
	// Invalid
	// Int64
}

func TestKind_Classification(t *testing.T) {
	for k := kind.Kind(1); int(k) < kind.KindTotal; k++ {
		assert.True(t, k.IsValid(), k.String())
		assert.NotEqual(t, k.IsPrimitive(), k.IsReference(), "%s must be exactly one of primitive/reference", k)
		assert.NotNil(t, k.ValueType(), k.String())
		assert.NotNil(t, k.StorageType(), k.String())
		assert.NotEmpty(t, k.GoType(), k.String())
	}

	assert.False(t, kind.Invalid.IsValid())
	assert.False(t, kind.Kind(kind.KindTotal).IsValid())
	assert.Nil(t, kind.Invalid.ValueType())
}

func TestKind_StorageTypes(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(new(string)), kind.KindString.StorageType())
	assert.Equal(t, reflect.TypeOf(""), kind.KindString.ValueType())
	assert.Equal(t, reflect.TypeOf(new(time.Time)), kind.KindTime.StorageType())
	assert.Equal(t, reflect.TypeOf([]byte(nil)), kind.KindBytes.StorageType())
	assert.Equal(t, reflect.TypeOf(int32(0)), kind.KindInt32.StorageType())
	assert.Equal(t, "*time.Time", kind.KindTime.GoType())
	assert.Equal(t, "float64", kind.KindFloat64.GoType())
	assert.Equal(t, "any", kind.KindAny.GoType())
}

func TestKind_Bits(t *testing.T) {
	assert.Equal(t, 8, kind.KindInt8.Bits())
	assert.Equal(t, 32, kind.KindFloat32.Bits())
	assert.Equal(t, 64, kind.KindUint64.Bits())
	assert.Panics(t, func() { _ = kind.KindString.Bits() })
}

func TestParse(t *testing.T) {
	cases := map[string]kind.Kind{
		"int32":     kind.KindInt32,
		" String ":  kind.KindString,
		"[]byte":    kind.KindBytes,
		"time.Time": kind.KindTime,
		"object":    kind.KindAny,
		"double":    kind.KindFloat64,
		"complex":   kind.Invalid,
		"":          kind.Invalid,
	}

	for in, want := range cases {
		assert.Equal(t, want, kind.Parse(in), in)
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for k := kind.Kind(1); int(k) < kind.KindTotal; k++ {
		text, err := k.MarshalText()
		assert.NoError(t, err)

		var back kind.Kind
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back, string(text))
	}
}

func TestFromGoType(t *testing.T) {
	for k := kind.Kind(1); int(k) < kind.KindTotal; k++ {
		assert.Equal(t, k, kind.FromGoType(k.GoType()), k.String())
	}

	assert.Equal(t, kind.KindAny, kind.FromGoType("interface{}"))
	assert.Equal(t, kind.Invalid, kind.FromGoType("string"))
	assert.Equal(t, kind.Invalid, kind.FromGoType("map[string]int"))
}
