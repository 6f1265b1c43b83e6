package synth

import (
	"flatstruct/descriptor"
	"flatstruct/internal/assembler"
	"flatstruct/kind"
)

// Value returns the value-struct synthesizer. On top of Structure it honors
// synchronized accessor tags and generates Equal, Hash and String over all
// registered fields in registration order.
func Value() Synthesizer {
	return &value{structure: structure{name: ValueName, sync: true}}
}

type value struct {
	structure
}

func (v *value) Emit(d *descriptor.Descriptor, b Builder) (*Registry, error) {
	reg, err := v.structure.Emit(d, b)
	if err != nil {
		return nil, err
	}

	for _, mb := range []*assembler.Method{
		equalMethod(reg, b),
		hashMethod(reg, b),
		stringMethod(DeriveName(v, d), reg, b),
	} {
		if err := mb.AddTo(b); err != nil {
			return nil, &Error{Kind: ErrSynthesisFailure, Descriptor: d.QualifiedName(), Method: mb.Name(), Err: err}
		}
	}

	return reg, nil
}

// equalMethod: nil is never equal, the receiver always is, another type never
// is; otherwise every field must match. Primitives compare by raw value,
// references by null-aware contained equality.
func equalMethod(reg *Registry, b Builder) *assembler.Method {
	recv := b.Receiver()

	mb := assembler.New("Equal").
		SetReturnType("bool").
		AddParam("other", "any")

	mb.AddLine(assembler.OpRejectNil, "if other == nil {\nreturn false\n}")
	mb.AddLine(assembler.OpAcceptSame, "if other == %[1]s {\nreturn true\n}", recv)
	mb.AddLine(assembler.OpRejectForeign, "o, ok := other.(*%[1]s)\nif !ok || o == nil {\nreturn false\n}", b.TypeName())

	for spec := range reg.All() {
		this, that := fieldRef(spec, "%[2]s"), fieldRef(spec, "o")

		if spec.Kind.IsPrimitive() {
			mb.AddLine(assembler.OpCompareField,
				"if "+this+" != "+that+" {\nreturn false\n}",
				spec.Name, recv)
			continue
		}

		mb.AddLine(assembler.OpCompareField,
			"if a, b := "+this+", "+that+"; valuehash.IsNull(a) {\n"+
				"if !valuehash.IsNull(b) {\nreturn false\n}\n"+
				"} else if valuehash.IsNull(b) || !valuehash.Equal(a, b) {\nreturn false\n}",
			spec.Name, recv)
	}

	mb.AddLine(assembler.OpAccept, "return true")

	return mb
}

// hashMethod folds every field into a 31-multiplier accumulator seeded with 1.
// Fields that compare equal hash equal.
func hashMethod(reg *Registry, b Builder) *assembler.Method {
	recv := b.Receiver()

	mb := assembler.New("Hash").SetReturnType("int32")
	mb.AddLine(assembler.OpHashSeed, "h := int32(1)")

	for spec := range reg.All() {
		this := fieldRef(spec, "%[2]s")

		switch {
		case spec.Kind == kind.KindBool:
			mb.AddLine(assembler.OpHashField, "h = 31*h + valuehash.Bool("+this+")", spec.Name, recv)
		case spec.Kind.IsPrimitive():
			mb.AddLine(assembler.OpHashField, "h = 31*h + int32("+this+")", spec.Name, recv)
		default:
			mb.AddLine(assembler.OpHashField, "h = 31*h + valuehash.Hash("+this+")", spec.Name, recv)
		}
	}

	mb.AddLine(assembler.OpHashResult, "return h")

	return mb
}

// stringMethod renders a header naming the type, one "name=value" line per
// field and a closing bracket. Reference fields show an identity marker, not
// their content.
func stringMethod(typeName string, reg *Registry, b Builder) *assembler.Method {
	recv := b.Receiver()

	mb := assembler.New("String").SetReturnType("string")
	mb.AddLine(assembler.OpHeader, "var sb strings.Builder\nsb.WriteString(%[1]q + \" [\\n\")", typeName)

	for spec := range reg.All() {
		this := fieldRef(spec, "%[2]s")

		render := "fmt.Sprint(" + this + ")"
		if spec.Kind.IsReference() {
			render = "valuehash.Marker(" + this + ")"
		}

		mb.AddLine(assembler.OpFormatField,
			"sb.WriteString(\"    %[1]s=\")\nsb.WriteString("+render+")\nsb.WriteString(\"\\n\")",
			spec.Name, recv)
	}

	mb.AddLine(assembler.OpFooter, "sb.WriteString(\"]\")\nreturn sb.String()")

	return mb
}
