package gen

import (
	"fmt"
	"slices"
	"strings"

	"flatstruct/descriptor"
	"flatstruct/internal/assembler"
	"flatstruct/internal/common"
	"flatstruct/synth"
)

const monitorField = "monitor"

// bodyNames are identifiers the generated value methods declare locally.
var bodyNames = []string{"other", "o", "ok", "a", "b", "h", "sb"}

// runtimePackages are the package names generated bodies may refer to.
var runtimePackages = []string{"fmt", "strings", "sync", "time", "valuehash", "volatile"}

// sourceBuilder is the source target: it collects fields and assembled
// methods and renders them as one Go file.
type sourceBuilder struct {
	typeName string
	receiver string
	fields   []synth.FieldSpec
	methods  []*assembler.Method
}

func newSourceBuilder(typeName string, d *descriptor.Descriptor) *sourceBuilder {
	return &sourceBuilder{
		typeName: typeName,
		receiver: chooseReceiver(d),
	}
}

// chooseReceiver picks a receiver name that no parameter, local or package
// name of the generated methods shadows.
func chooseReceiver(d *descriptor.Descriptor) string {
	taken := slices.Concat(bodyNames, runtimePackages)
	for _, m := range d.Methods {
		for _, p := range m.Params {
			taken = append(taken, p.Name)
		}
	}

	candidates := []string{"s", "self", "this", "recv"}
	if d.Name != "" {
		candidates = slices.Insert(candidates, 0, strings.ToLower(d.Name[:1]))
	}

	for _, c := range candidates {
		if common.IsIdentifier(c) && !slices.Contains(taken, c) {
			return c
		}
	}

	for i := 0; ; i++ {
		c := fmt.Sprintf("recv%d", i)
		if !slices.Contains(taken, c) {
			return c
		}
	}
}

func (b *sourceBuilder) Receiver() string {
	return b.receiver
}

func (b *sourceBuilder) TypeName() string {
	return b.typeName
}

func (b *sourceBuilder) AddField(spec synth.FieldSpec) error {
	switch {
	case !common.IsIdentifier(spec.Name):
		return fmt.Errorf("field %q is not a Go identifier", spec.Name)
	case spec.Name == monitorField:
		return fmt.Errorf("field name %q is reserved", spec.Name)
	}

	b.fields = append(b.fields, spec)

	return nil
}

func (b *sourceBuilder) AddMethod(m *assembler.Method) error {
	if !common.IsIdentifier(m.Name()) {
		return fmt.Errorf("method %q is not a Go identifier", m.Name())
	}

	for _, p := range m.Params() {
		if !common.IsIdentifier(p.Name) {
			return fmt.Errorf("method %s: parameter %q is not a Go identifier", m.Name(), p.Name)
		}
	}

	if slices.ContainsFunc(b.methods, func(o *assembler.Method) bool { return o.Name() == m.Name() }) {
		return fmt.Errorf("method %s is generated twice", m.Name())
	}

	b.methods = append(b.methods, m)

	return nil
}

// check reports clashes only visible once everything is emitted.
func (b *sourceBuilder) check() error {
	for _, f := range b.fields {
		if slices.ContainsFunc(b.methods, func(m *assembler.Method) bool { return m.Name() == f.Name }) {
			return fmt.Errorf("field %s and method %s share a name", f.Name, f.Name)
		}
	}

	return nil
}

func (b *sourceBuilder) monitor() bool {
	return slices.ContainsFunc(b.methods, func(m *assembler.Method) bool {
		if m.Has(assembler.Synchronized) {
			return true
		}

		return slices.ContainsFunc(m.Body(), func(l assembler.Line) bool {
			return l.Op == assembler.OpGuardedAssign
		})
	})
}

func (b *sourceBuilder) fieldData() []fieldData {
	out := make([]fieldData, len(b.fields))
	for i, f := range b.fields {
		typ := f.Kind.GoType()
		if f.Volatile {
			typ = "volatile.Cell[" + typ + "]"
		}

		out[i] = fieldData{Name: f.Name, Type: typ}
	}

	return out
}

func (b *sourceBuilder) methodData() []methodData {
	out := make([]methodData, len(b.methods))
	for i, m := range b.methods {
		out[i] = methodData{Signature: m.Signature(), Body: b.renderBody(m)}
	}

	return out
}

// renderBody joins the body lines. A synchronized method holds the monitor
// throughout; otherwise each guarded assignment takes it on its own.
func (b *sourceBuilder) renderBody(m *assembler.Method) string {
	lock := b.receiver + "." + monitorField + ".Lock()"
	unlock := b.receiver + "." + monitorField + ".Unlock()"

	var lines []string

	synchronized := m.Has(assembler.Synchronized)
	if synchronized {
		lines = append(lines, lock, "defer "+unlock, "")
	}

	for _, l := range m.Body() {
		if l.Op == assembler.OpGuardedAssign && !synchronized {
			lines = append(lines, lock, l.Text, unlock)
			continue
		}

		lines = append(lines, l.Text)
	}

	return strings.Join(lines, "\n")
}
