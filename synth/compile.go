package synth

import (
	"fmt"
	"strings"

	"flatstruct/internal/assembler"
	"flatstruct/kind"
	"flatstruct/valuehash"
)

// method is an assembled method compiled for the runtime target.
type method struct {
	source       *assembler.Method
	params       []kind.Kind
	synchronized bool
	// value marks Equal, Hash and String bodies.
	value bool
	steps []step
}

// frame is the state of one call.
type frame struct {
	inst   *Instance
	args   []any
	other  *Instance
	acc    int32
	sb     strings.Builder
	result any
	done   bool
}

type step func(f *frame)

func compile(t *Type, src *assembler.Method) (*method, error) {
	m := &method{
		source:       src,
		synchronized: src.Has(assembler.Synchronized),
	}

	params := src.Params()
	for _, p := range params {
		k := kind.FromGoType(p.Type)
		if k == kind.Invalid {
			return nil, fmt.Errorf("method %s: parameter %s has unsupported type %q", src.Name(), p.Name, p.Type)
		}
		m.params = append(m.params, k)
	}

	paramIndex := func(name string) (int, error) {
		for i, p := range params {
			if p.Name == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("method %s: no parameter %s", src.Name(), name)
	}

	for _, line := range src.Body() {
		if line.Op == assembler.OpRaw {
			continue
		}

		var fieldIdx int
		switch line.Op {
		case assembler.OpAssign, assembler.OpGuardedAssign, assembler.OpReturn,
			assembler.OpCompareField, assembler.OpHashField, assembler.OpFormatField:
			if len(line.Operands) == 0 {
				return nil, fmt.Errorf("method %s: %q has no field operand", src.Name(), line.Text)
			}

			idx, ok := t.field(line.Operands[0])
			if !ok {
				return nil, fmt.Errorf("method %s: unknown field %s", src.Name(), line.Operands[0])
			}
			fieldIdx = idx
		}

		switch line.Op {
		case assembler.OpAssign, assembler.OpGuardedAssign:
			if len(line.Operands) < 2 {
				return nil, fmt.Errorf("method %s: %q has no parameter operand", src.Name(), line.Text)
			}

			pi, err := paramIndex(line.Operands[1])
			if err != nil {
				return nil, err
			}

			guarded := line.Op == assembler.OpGuardedAssign && !m.synchronized
			m.steps = append(m.steps, assignStep(fieldIdx, pi, guarded))

		case assembler.OpReturn:
			m.steps = append(m.steps, func(f *frame) {
				f.result = f.inst.value(fieldIdx)
				f.done = true
			})

		case assembler.OpRejectNil:
			m.value = true
			m.steps = append(m.steps, func(f *frame) {
				if valuehash.IsNull(f.args[0]) {
					f.result, f.done = false, true
				}
			})

		case assembler.OpAcceptSame:
			m.steps = append(m.steps, func(f *frame) {
				if o, ok := f.args[0].(*Instance); ok && o == f.inst {
					f.result, f.done = true, true
				}
			})

		case assembler.OpRejectForeign:
			m.steps = append(m.steps, func(f *frame) {
				o, ok := f.args[0].(*Instance)
				if !ok || o.typ != f.inst.typ {
					f.result, f.done = false, true
					return
				}
				f.other = o
			})

		case assembler.OpCompareField:
			primitive := t.fields[fieldIdx].Kind.IsPrimitive()
			m.steps = append(m.steps, func(f *frame) {
				a, b := f.inst.raw(fieldIdx), f.other.raw(fieldIdx)
				if !fieldsEqual(primitive, a, b) {
					f.result, f.done = false, true
				}
			})

		case assembler.OpAccept:
			m.steps = append(m.steps, func(f *frame) {
				f.result, f.done = true, true
			})

		case assembler.OpHashSeed:
			m.value = true
			m.steps = append(m.steps, func(f *frame) {
				f.acc = 1
			})

		case assembler.OpHashField:
			k := t.fields[fieldIdx].Kind
			m.steps = append(m.steps, func(f *frame) {
				f.acc = 31*f.acc + fieldHash(k, f.inst.raw(fieldIdx))
			})

		case assembler.OpHashResult:
			m.steps = append(m.steps, func(f *frame) {
				f.result, f.done = f.acc, true
			})

		case assembler.OpHeader:
			m.value = true
			header := t.name
			if len(line.Operands) > 0 {
				header = line.Operands[0]
			}
			m.steps = append(m.steps, func(f *frame) {
				f.sb.WriteString(header)
				f.sb.WriteString(" [\n")
			})

		case assembler.OpFormatField:
			spec := t.fields[fieldIdx]
			m.steps = append(m.steps, func(f *frame) {
				f.sb.WriteString("    ")
				f.sb.WriteString(spec.Name)
				f.sb.WriteString("=")
				f.sb.WriteString(formatField(spec.Kind, f.inst.raw(fieldIdx)))
				f.sb.WriteString("\n")
			})

		case assembler.OpFooter:
			m.steps = append(m.steps, func(f *frame) {
				f.sb.WriteString("]")
				f.result, f.done = f.sb.String(), true
			})

		default:
			return nil, fmt.Errorf("method %s: unsupported op %d in %q", src.Name(), line.Op, line.Text)
		}
	}

	return m, nil
}

func assignStep(fieldIdx, paramIdx int, guarded bool) step {
	if !guarded {
		return func(f *frame) {
			f.inst.store(fieldIdx, f.args[paramIdx])
		}
	}

	return func(f *frame) {
		f.inst.mu.Lock()
		defer f.inst.mu.Unlock()

		f.inst.store(fieldIdx, f.args[paramIdx])
	}
}

// fieldsEqual compares two storage values of one field.
func fieldsEqual(primitive bool, a, b any) bool {
	if primitive {
		return a == b
	}

	if valuehash.IsNull(a) {
		return valuehash.IsNull(b)
	}

	return !valuehash.IsNull(b) && valuehash.Equal(a, b)
}

// fieldHash folds one storage value: primitives truncate to int32, references
// use their contained-value hash.
func fieldHash(k kind.Kind, v any) int32 {
	if !k.IsPrimitive() {
		return valuehash.Hash(v)
	}

	switch x := v.(type) {
	case bool:
		return valuehash.Bool(x)
	case int:
		return int32(x)
	case int8:
		return int32(x)
	case int16:
		return int32(x)
	case int32:
		return x
	case int64:
		return int32(x)
	case uint:
		return int32(x)
	case uint8:
		return int32(x)
	case uint16:
		return int32(x)
	case uint32:
		return int32(x)
	case uint64:
		return int32(x)
	case float32:
		return int32(x)
	case float64:
		return int32(x)
	}

	panic(fmt.Sprintf("primitive field of kind %s holds %T", k, v))
}

func formatField(k kind.Kind, v any) string {
	if k.IsReference() {
		return valuehash.Marker(v)
	}

	return fmt.Sprint(v)
}
