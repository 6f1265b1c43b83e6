// Package valuehash holds the value-semantics primitives shared by runtime
// synthesized types and generated source: null checks, contained-value
// equality and hashing for reference fields, and the identity marker used by
// String.
package valuehash

import (
	"bytes"
	"fmt"
	"reflect"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/zeebo/xxh3"
)

// dumper renders arbitrary values deterministically so values that are
// reflect.DeepEqual produce identical dumps.
var dumper = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// IsNull reports whether a reference field value is null: a nil interface or
// a nil pointer, slice or map.
func IsNull(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Equal compares the contained values of two non-null reference fields.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *string:
		y, ok := b.(*string)
		return ok && *x == *y
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case *time.Time:
		y, ok := b.(*time.Time)
		return ok && x.Equal(*y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Hash returns the contained-value hash of a reference field, or 0 when it
// is null.
func Hash(v any) int32 {
	if IsNull(v) {
		return 0
	}

	switch x := v.(type) {
	case *string:
		return fold(xxh3.HashString(*x))
	case string:
		return fold(xxh3.HashString(x))
	case []byte:
		return fold(xxh3.Hash(x))
	case *time.Time:
		return fold(uint64(x.UnixNano()))
	case time.Time:
		return fold(uint64(x.UnixNano()))
	default:
		return fold(xxh3.HashString(dumper.Sdump(v)))
	}
}

// Bool folds a boolean into the hash accumulator domain.
func Bool(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

// Marker is an opaque identity marker for a reference value: it identifies
// the stored object, never its content.
func Marker(v any) string {
	if IsNull(v) {
		return "null"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("<%x>", rv.Pointer())
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

func fold(h uint64) int32 {
	return int32(h ^ h>>32)
}
