package synth

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"flatstruct/kind"
	"flatstruct/valuehash"
	"flatstruct/volatile"
)

// Instance is one object of a synthesized Type. Its fields start at their zero
// values: primitives are 0 or false, references are null.
type Instance struct {
	typ *Type
	// mu is the per-instance monitor used by synchronized accessors.
	mu sync.Mutex
	v  reflect.Value
}

func (i *Instance) Type() *Type {
	return i.typ
}

// Invoke calls a generated method. Arguments use the field value types
// (string, time.Time, ...); reference kinds also accept their storage type
// and nil. Getters of a null reference field return nil.
func (i *Instance) Invoke(name string, args ...any) (any, error) {
	m, ok := i.typ.methods[name]
	if !ok {
		return nil, &Error{Kind: ErrUnknownMethod, Descriptor: i.typ.name, Method: name}
	}

	if len(args) != len(m.params) {
		return nil, &Error{
			Kind:       ErrArgument,
			Descriptor: i.typ.name,
			Method:     name,
			Detail:     fmt.Sprintf("want %d arguments, got %d", len(m.params), len(args)),
		}
	}

	stored := make([]any, len(args))
	for n, a := range args {
		s, err := toStorage(m.params[n], a)
		if err != nil {
			return nil, &Error{
				Kind:       ErrArgument,
				Descriptor: i.typ.name,
				Method:     name,
				Detail:     fmt.Sprintf("argument %d", n),
				Err:        err,
			}
		}
		stored[n] = s
	}

	return i.run(m, stored), nil
}

// Call invokes a generated method and converts its result to T. A null result
// yields the zero T.
func Call[T any](i *Instance, name string, args ...any) (T, error) {
	var zero T

	res, err := i.Invoke(name, args...)
	if err != nil || res == nil {
		return zero, err
	}

	t, ok := res.(T)
	if !ok {
		return zero, &Error{
			Kind:       ErrArgument,
			Descriptor: i.typ.name,
			Method:     name,
			Detail:     fmt.Sprintf("result is %T, not %T", res, zero),
		}
	}

	return t, nil
}

// Get reads a field directly, bypassing accessors. A null reference field
// reads as nil.
func (i *Instance) Get(field string) (any, error) {
	idx, ok := i.typ.field(field)
	if !ok {
		return nil, &Error{Kind: ErrUnknownField, Descriptor: i.typ.name, Field: field}
	}

	return i.value(idx), nil
}

// Equal is the generated value equality for value-flavor types and identity
// otherwise.
func (i *Instance) Equal(other any) bool {
	if i.typ.equal == nil {
		o, ok := other.(*Instance)
		return ok && o == i
	}

	return i.run(i.typ.equal, []any{other}).(bool)
}

// Hash is consistent with Equal.
func (i *Instance) Hash() int32 {
	if i.typ.hash == nil {
		return valuehash.Hash(fmt.Sprintf("%p", i))
	}

	return i.run(i.typ.hash, nil).(int32)
}

func (i *Instance) String() string {
	if i.typ.str == nil {
		return fmt.Sprintf("%s@%p", i.typ.name, i)
	}

	return i.run(i.typ.str, nil).(string)
}

func (i *Instance) run(m *method, args []any) any {
	if m.synchronized {
		i.mu.Lock()
		defer i.mu.Unlock()
	}

	f := &frame{inst: i, args: args}
	for _, s := range m.steps {
		s(f)
		if f.done {
			break
		}
	}

	return f.result
}

// raw returns the storage value of field idx.
func (i *Instance) raw(idx int) any {
	fv := i.v.Field(idx)
	if i.typ.fields[idx].Volatile {
		return fv.Addr().Interface().(volatile.Accessor).LoadAny()
	}

	return fv.Interface()
}

// store writes a storage value, nil meaning null.
func (i *Instance) store(idx int, v any) {
	fv := i.v.Field(idx)
	if i.typ.fields[idx].Volatile {
		fv.Addr().Interface().(volatile.Accessor).StoreAny(v)
		return
	}

	if v == nil {
		fv.SetZero()
		return
	}

	fv.Set(reflect.ValueOf(v))
}

// value is raw converted to the field's value type.
func (i *Instance) value(idx int) any {
	return fromStorage(i.typ.fields[idx].Kind, i.raw(idx))
}

func toStorage(k kind.Kind, v any) (any, error) {
	switch k {
	case kind.KindAny:
		return v, nil
	case kind.KindString:
		switch x := v.(type) {
		case nil:
			return (*string)(nil), nil
		case string:
			return &x, nil
		case *string:
			return x, nil
		}
	case kind.KindTime:
		switch x := v.(type) {
		case nil:
			return (*time.Time)(nil), nil
		case time.Time:
			return &x, nil
		case *time.Time:
			return x, nil
		}
	case kind.KindBytes:
		switch x := v.(type) {
		case nil:
			return []byte(nil), nil
		case []byte:
			return x, nil
		}
	default:
		if v != nil && reflect.TypeOf(v) == k.StorageType() {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%T is not assignable to %s", v, k.Name())
}

// fromStorage unwraps the nullable storage of String, Time and Bytes fields.
// Other kinds, Any included, are returned as stored.
func fromStorage(k kind.Kind, v any) any {
	switch k {
	case kind.KindString, kind.KindTime, kind.KindBytes:
	default:
		return v
	}

	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		if x == nil {
			return nil
		}
		return x
	}

	return v
}
