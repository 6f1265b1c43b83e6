package synth

import (
	"fmt"

	"flatstruct/descriptor"
	"flatstruct/internal/assembler"
	"flatstruct/kind"
)

// Builder receives the parts of a synthesized type. The runtime type builder
// and the Go source generator both implement it.
type Builder interface {
	assembler.Target
	// AddField declares a backing field.
	AddField(spec FieldSpec) error
	// Receiver is the identifier body lines use for the instance.
	Receiver() string
	// TypeName is the identifier body lines use for the synthesized type.
	TypeName() string
}

// Synthesizer turns a valid descriptor into fields and methods of a Builder.
type Synthesizer interface {
	// Name is used in derived type names: {namespace}.{Name}_of_{descriptor}.
	Name() string
	// Emit registers d's fields and emits the implementation into b. It
	// assumes ValidateDescriptor(d) succeeded.
	Emit(d *descriptor.Descriptor, b Builder) (*Registry, error)
}

const (
	StructureName = "Structure"
	ValueName     = "Value"
)

// Structure returns the plain synthesizer: backing fields and accessors only.
// Synchronization requests are ignored.
func Structure() Synthesizer {
	return &structure{name: StructureName}
}

type structure struct {
	name string
	// sync honors the Synchronized flag of accessor tags.
	sync bool
}

func (s *structure) Name() string {
	return s.name
}

func (s *structure) Emit(d *descriptor.Descriptor, b Builder) (*Registry, error) {
	reg := NewRegistry()

	if err := s.emitFields(d, reg, b); err != nil {
		return nil, err
	}

	if err := s.emitAccessors(d, reg, b); err != nil {
		return nil, err
	}

	return reg, nil
}

func (s *structure) emitFields(d *descriptor.Descriptor, reg *Registry, b Builder) error {
	for _, fd := range d.Fields {
		name, err := fieldName(d, fd)
		if err != nil {
			return err
		}

		if !fd.Type.IsValid() {
			return &Error{
				Kind:       ErrMalformedFieldDeclaration,
				Descriptor: d.QualifiedName(),
				Field:      name,
				Detail:     "type can't be null",
			}
		}

		spec, err := reg.Register(name, fd.Type, fd.Volatile)
		if err != nil {
			return &Error{Kind: ErrDuplicateField, Descriptor: d.QualifiedName(), Field: name, Err: err}
		}

		if err := b.AddField(spec); err != nil {
			return &Error{Kind: ErrSynthesisFailure, Descriptor: d.QualifiedName(), Field: name, Err: err}
		}
	}

	return nil
}

func fieldName(d *descriptor.Descriptor, fd descriptor.FieldDecl) (string, error) {
	fail := func(detail string) error {
		return &Error{
			Kind:       ErrMalformedFieldDeclaration,
			Descriptor: d.QualifiedName(),
			Detail:     fmt.Sprintf("constant %s: %s", fd.Const, detail),
		}
	}

	switch v := fd.Value.(type) {
	case nil:
		return "", fail("name can't be null")
	case string:
		if v == "" {
			return "", fail("name can't be empty")
		}
		return v, nil
	default:
		return "", fail(fmt.Sprintf("constant should be a string, not %T", v))
	}
}

func (s *structure) emitAccessors(d *descriptor.Descriptor, reg *Registry, b Builder) error {
	recv := b.Receiver()

	for _, md := range d.Methods {
		if !md.Tagged() {
			continue
		}

		mb := assembler.New(md.Name)

		for _, p := range md.Params {
			if p.Setter == nil {
				if !p.Type.IsValid() {
					return &Error{
						Kind:       ErrSynthesisFailure,
						Descriptor: d.QualifiedName(),
						Method:     md.Name,
						Detail:     fmt.Sprintf("parameter %s has no declarable type", p.Name),
					}
				}

				mb.AddParam(p.Name, p.Type.GoType())
				continue
			}

			spec, err := verifyFieldType(d, md.Name, reg, p.Setter.Field, p.Type)
			if err != nil {
				return err
			}

			op := assembler.OpAssign
			if s.sync && p.Setter.Synchronized {
				op = assembler.OpGuardedAssign
			}

			mb.AddParam(p.Name, p.Type.GoType())
			mb.AddLine(op, storeFormat(spec), spec.Name, p.Name, recv)
		}

		if md.Getter != nil {
			spec, err := verifyFieldType(d, md.Name, reg, md.Getter.Field, md.Returns)
			if err != nil {
				return err
			}

			if s.sync && md.Getter.Synchronized {
				mb.AddModifier(assembler.Synchronized)
			}

			mb.SetReturnType(md.Returns.GoType())
			mb.AddLine(assembler.OpReturn, "return "+fieldRef(spec, "%[2]s"), spec.Name, recv)
		} else if md.Returns != kind.Invalid {
			return &Error{
				Kind:       ErrSynthesisFailure,
				Descriptor: d.QualifiedName(),
				Method:     md.Name,
				Detail:     fmt.Sprintf("method returns %s but has no getter tag", md.Returns.Name()),
			}
		}

		if err := mb.AddTo(b); err != nil {
			return &Error{Kind: ErrSynthesisFailure, Descriptor: d.QualifiedName(), Method: md.Name, Err: err}
		}
	}

	return nil
}

// verifyFieldType checks that field is registered with exactly the declared
// kind. No widening or conversion is accepted.
func verifyFieldType(d *descriptor.Descriptor, method string, reg *Registry, field string, declared kind.Kind) (FieldSpec, error) {
	spec, ok := reg.Lookup(field)
	if !ok {
		return FieldSpec{}, &Error{
			Kind:       ErrUnknownField,
			Descriptor: d.QualifiedName(),
			Method:     method,
			Field:      field,
			Detail:     "field does not exist",
		}
	}

	if !declared.IsValid() {
		return FieldSpec{}, &Error{
			Kind:       ErrFieldTypeMismatch,
			Descriptor: d.QualifiedName(),
			Method:     method,
			Field:      field,
			Detail: fmt.Sprintf("declared type has no field kind; a %s field is declared as %s (kinds are %s)",
				spec.Kind.Name(), spec.Kind.GoType(), kind.Spellings),
		}
	}

	if spec.Kind != declared {
		return FieldSpec{}, &Error{
			Kind:       ErrFieldTypeMismatch,
			Descriptor: d.QualifiedName(),
			Method:     method,
			Field:      field,
			Detail:     fmt.Sprintf("field has type %s instead of %s", spec.Kind.Name(), declared.Name()),
		}
	}

	return spec, nil
}

// Body line formats take the field name as operand 1. fieldRef renders a read
// of that field on owner.
func fieldRef(spec FieldSpec, owner string) string {
	if spec.Volatile {
		return owner + ".%[1]s.Load()"
	}

	return owner + ".%[1]s"
}

// storeFormat takes operands (field, param, receiver).
func storeFormat(spec FieldSpec) string {
	if spec.Volatile {
		return "%[3]s.%[1]s.Store(%[2]s)"
	}

	return "%[3]s.%[1]s = %[2]s"
}
