// Package kind defines the semantic field types a descriptor may declare.
//
// A kind is either primitive (compared by raw value, never null) or a
// reference (nullable, compared by contained value).
package kind

import (
	"math"
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

type Kind int

const (
	// Invalid is the zero value; as a return kind it means "no result".
	Invalid Kind = iota

	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64

	KindString
	KindBytes
	KindTime
	KindAny

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var names = map[string]Kind{
	"bool":        KindBool,
	"boolean":     KindBool,
	"int":         KindInt,
	"int8":        KindInt8,
	"byte":        KindUint8,
	"int16":       KindInt16,
	"short":       KindInt16,
	"int32":       KindInt32,
	"rune":        KindInt32,
	"int64":       KindInt64,
	"long":        KindInt64,
	"uint":        KindUint,
	"uint8":       KindUint8,
	"uint16":      KindUint16,
	"uint32":      KindUint32,
	"uint64":      KindUint64,
	"float32":     KindFloat32,
	"float":       KindFloat32,
	"float64":     KindFloat64,
	"double":      KindFloat64,
	"string":      KindString,
	"[]byte":      KindBytes,
	"bytes":       KindBytes,
	"time":        KindTime,
	"time.time":   KindTime,
	"any":         KindAny,
	"interface{}": KindAny,
	"object":      KindAny,
}

// Parse resolves a kind from its spelling in a descriptor source. Matching is
// case-insensitive. Unknown names yield Invalid.
func Parse(name string) Kind {
	return names[strings.ToLower(strings.TrimSpace(name))]
}

// IsValid reports whether k names a declarable field kind.
func (k Kind) IsValid() bool {
	return k > Invalid && int(k) < KindTotal
}

func (k Kind) IsPrimitive() bool {
	switch k {
	default:
		return false
	case KindBool,
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k Kind) IsReference() bool {
	switch k {
	default:
		return false
	case KindString, KindBytes, KindTime, KindAny:
		return true
	}
}

func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k Kind) Bits() int {
	switch k {
	default:
		panic("only numeric kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var (
	valueTypes = [KindTotal]reflect.Type{
		KindBool:    reflect.TypeFor[bool](),
		KindInt:     reflect.TypeFor[int](),
		KindInt8:    reflect.TypeFor[int8](),
		KindInt16:   reflect.TypeFor[int16](),
		KindInt32:   reflect.TypeFor[int32](),
		KindInt64:   reflect.TypeFor[int64](),
		KindUint:    reflect.TypeFor[uint](),
		KindUint8:   reflect.TypeFor[uint8](),
		KindUint16:  reflect.TypeFor[uint16](),
		KindUint32:  reflect.TypeFor[uint32](),
		KindUint64:  reflect.TypeFor[uint64](),
		KindFloat32: reflect.TypeFor[float32](),
		KindFloat64: reflect.TypeFor[float64](),
		KindString:  reflect.TypeFor[string](),
		KindBytes:   reflect.TypeFor[[]byte](),
		KindTime:    reflect.TypeFor[time.Time](),
		KindAny:     reflect.TypeFor[any](),
	}

	storageTypes = [KindTotal]reflect.Type{
		KindString: reflect.TypeFor[*string](),
		KindTime:   reflect.TypeFor[*time.Time](),
	}
)

// ValueType is the Go type callers pass to setters and receive from getters
// of a field of this kind. Invalid kinds yield nil.
func (k Kind) ValueType() reflect.Type {
	if !k.IsValid() {
		return nil
	}

	return valueTypes[k]
}

// StorageType is the Go type a backing field of this kind is held in. Reference
// kinds are stored so that nil means "null".
func (k Kind) StorageType() reflect.Type {
	if !k.IsValid() {
		return nil
	}

	if t := storageTypes[k]; t != nil {
		return t
	}

	return valueTypes[k]
}

// GoType is the spelling of StorageType in generated source.
func (k Kind) GoType() string {
	switch k {
	case KindString:
		return "*string"
	case KindBytes:
		return "[]byte"
	case KindTime:
		return "*time.Time"
	case KindAny:
		return "any"
	case Invalid:
		return ""
	default:
		return k.ValueType().String()
	}
}

// Name is the canonical descriptor spelling of k, accepted back by Parse.
func (k Kind) Name() string {
	switch k {
	case KindBytes:
		return "[]byte"
	case KindTime:
		return "time.Time"
	case KindAny:
		return "any"
	case Invalid:
		return "invalid"
	default:
		return k.ValueType().String()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown spellings decode
// to Invalid rather than failing, so the synthesizers can report them against
// the declaration that carries them.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = Parse(string(text))
	return nil
}

// Spellings lists the Go types a Go-source accessor may use for a field. A
// type outside the list, such as a plain string, has no kind.
const Spellings = "bool, int*, uint*, float32, float64, *string, []byte, *time.Time or any"

// FromGoType maps a storage type spelling (as returned by GoType) back to its
// kind. Unknown spellings yield Invalid.
func FromGoType(spelling string) Kind {
	if spelling == "interface{}" {
		return KindAny
	}

	for k := Kind(1); int(k) < KindTotal; k++ {
		if k.GoType() == spelling {
			return k
		}
	}

	return Invalid
}

// FromReflectType maps a Go value or storage type back to its kind. Named types
// are not kinds: only the exact predeclared types (and time.Time) match.
func FromReflectType(rtype reflect.Type) Kind {
	if rtype == nil {
		return Invalid
	}

	for k := Kind(1); int(k) < KindTotal; k++ {
		if valueTypes[k] == rtype || storageTypes[k] == rtype {
			return k
		}
	}

	return Invalid
}
