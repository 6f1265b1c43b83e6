package synth

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"flatstruct/descriptor"
	"flatstruct/internal/assembler"
	"flatstruct/kind"
	"flatstruct/volatile"
)

// Type is a synthesized implementation of a descriptor. It is immutable once
// built and safe for concurrent use.
type Type struct {
	name       string
	flavor     string
	descriptor *descriptor.Descriptor
	fields     []FieldSpec
	structType reflect.Type
	methods    map[string]*method
	order      []string

	equal, hash, str *method
}

// Name is the derived name, e.g. "example.Structure_of_Person".
func (t *Type) Name() string {
	return t.name
}

// Flavor is the name of the synthesizer that built t.
func (t *Type) Flavor() string {
	return t.flavor
}

func (t *Type) Descriptor() *descriptor.Descriptor {
	return t.descriptor
}

// Fields returns the registered fields in registration order.
func (t *Type) Fields() []FieldSpec {
	return slices.Clone(t.fields)
}

// Struct is the backing struct type holding one instance's fields.
func (t *Type) Struct() reflect.Type {
	return t.structType
}

// Methods returns the signatures of all generated methods in emission order.
func (t *Type) Methods() []string {
	out := make([]string, len(t.order))
	for i, name := range t.order {
		out[i] = t.methods[name].source.Signature()
	}

	return out
}

// Source renders the generated body of method name, or "" when t has no such
// method.
func (t *Type) Source(name string) string {
	m, ok := t.methods[name]
	if !ok {
		return ""
	}

	lines := make([]string, 0, len(m.source.Body()))
	for _, l := range m.source.Body() {
		lines = append(lines, l.Text)
	}

	return strings.Join(lines, "\n")
}

// HasValueSemantics reports whether t carries generated Equal, Hash and String.
func (t *Type) HasValueSemantics() bool {
	return t.equal != nil && t.hash != nil && t.str != nil
}

func (t *Type) String() string {
	return t.name
}

var volatileTypes = [kind.KindTotal]reflect.Type{
	kind.KindBool:    reflect.TypeFor[volatile.Cell[bool]](),
	kind.KindInt:     reflect.TypeFor[volatile.Cell[int]](),
	kind.KindInt8:    reflect.TypeFor[volatile.Cell[int8]](),
	kind.KindInt16:   reflect.TypeFor[volatile.Cell[int16]](),
	kind.KindInt32:   reflect.TypeFor[volatile.Cell[int32]](),
	kind.KindInt64:   reflect.TypeFor[volatile.Cell[int64]](),
	kind.KindUint:    reflect.TypeFor[volatile.Cell[uint]](),
	kind.KindUint8:   reflect.TypeFor[volatile.Cell[uint8]](),
	kind.KindUint16:  reflect.TypeFor[volatile.Cell[uint16]](),
	kind.KindUint32:  reflect.TypeFor[volatile.Cell[uint32]](),
	kind.KindUint64:  reflect.TypeFor[volatile.Cell[uint64]](),
	kind.KindFloat32: reflect.TypeFor[volatile.Cell[float32]](),
	kind.KindFloat64: reflect.TypeFor[volatile.Cell[float64]](),
	kind.KindString:  reflect.TypeFor[volatile.Cell[*string]](),
	kind.KindBytes:   reflect.TypeFor[volatile.Cell[[]byte]](),
	kind.KindTime:    reflect.TypeFor[volatile.Cell[*time.Time]](),
	kind.KindAny:     reflect.TypeFor[volatile.Cell[any]](),
}

// typeBuilder is the runtime Builder: fields become a reflect.StructOf type and
// method bodies are compiled into steps over an Instance.
type typeBuilder struct {
	name    string
	fields  []FieldSpec
	layout  []reflect.StructField
	methods map[string]*assembler.Method
	order   []string
}

func newTypeBuilder(name string) *typeBuilder {
	return &typeBuilder{
		name:    name,
		methods: make(map[string]*assembler.Method),
	}
}

func (b *typeBuilder) Receiver() string {
	return "this"
}

func (b *typeBuilder) TypeName() string {
	return b.name
}

func (b *typeBuilder) AddField(spec FieldSpec) error {
	storage := spec.Kind.StorageType()
	if spec.Volatile {
		storage = volatileTypes[spec.Kind]
	}

	if storage == nil {
		return fmt.Errorf("field %q: no storage for kind %s", spec.Name, spec.Kind)
	}

	b.fields = append(b.fields, spec)
	b.layout = append(b.layout, reflect.StructField{
		Name: fmt.Sprintf("F%d", spec.Index),
		Type: storage,
		Tag:  reflect.StructTag(fmt.Sprintf("flatstruct:%q", spec.Name)),
	})

	return nil
}

func (b *typeBuilder) AddMethod(m *assembler.Method) error {
	if _, ok := b.methods[m.Name()]; ok {
		return fmt.Errorf("method %s is generated twice", m.Name())
	}

	b.methods[m.Name()] = m
	b.order = append(b.order, m.Name())

	return nil
}

// build finalizes the type. A panic from reflect is reported as an error.
func (b *typeBuilder) build(d *descriptor.Descriptor, flavor string) (t *Type, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("building %s: %v", b.name, r)
		}
	}()

	t = &Type{
		name:       b.name,
		flavor:     flavor,
		descriptor: d,
		fields:     b.fields,
		structType: reflect.StructOf(b.layout),
		methods:    make(map[string]*method, len(b.methods)),
		order:      b.order,
	}

	for _, name := range b.order {
		m, err := compile(t, b.methods[name])
		if err != nil {
			return nil, err
		}

		t.methods[name] = m
	}

	t.equal, t.hash, t.str = t.valueMethod("Equal"), t.valueMethod("Hash"), t.valueMethod("String")

	return t, nil
}

// valueMethod returns the generated value method name if its body was built
// by the value synthesizer rather than declared as an accessor.
func (t *Type) valueMethod(name string) *method {
	m, ok := t.methods[name]
	if !ok || !m.value {
		return nil
	}

	return m
}

func (t *Type) field(name string) (int, bool) {
	for i, f := range t.fields {
		if f.Name == name {
			return i, true
		}
	}

	return 0, false
}

func (t *Type) newInstance() *Instance {
	return &Instance{
		typ: t,
		v:   reflect.New(t.structType).Elem(),
	}
}
