package descriptor

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"flatstruct/kind"
)

// Form tells whether a descriptor is a pure contract or a concrete type.
// Only contracts can be synthesized.
type Form int

const (
	FormContract Form = iota
	FormConcrete
)

func (f Form) String() string {
	switch f {
	case FormContract:
		return "contract"
	case FormConcrete:
		return "concrete"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Form) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "contract", "interface":
		*f = FormContract
	case "concrete", "struct", "class":
		*f = FormConcrete
	default:
		return fmt.Errorf("unknown descriptor form %q", text)
	}

	return nil
}

// Descriptor declares a data shape: fields plus read/write accessors.
type Descriptor struct {
	// Namespace qualifies Name; for Go-source descriptors it is the import path.
	Namespace string `yaml:"namespace,omitempty"`
	// Name is the short name of the contract.
	Name    string       `yaml:"name" validate:"required"`
	Form    Form         `yaml:"form,omitempty"`
	Fields  []FieldDecl  `yaml:"fields,omitempty" validate:"dive"`
	Methods []MethodDecl `yaml:"methods,omitempty" validate:"dive"`

	// Origin names where the descriptor was read from, for diagnostics.
	Origin string `yaml:"-"`
	// ImportPath is set when the descriptor is a Go interface that generated
	// source can assert against.
	ImportPath string `yaml:"-"`
}

// FieldDecl declares one field through a name-carrying constant.
type FieldDecl struct {
	// Const is the identifier of the constant carrying the name.
	Const string `yaml:"const,omitempty"`
	// Value is the constant's value: the field name. Anything but a
	// non-empty string is a malformed declaration.
	Value    any       `yaml:"name"`
	Type     kind.Kind `yaml:"type"`
	Volatile bool      `yaml:"volatile,omitempty"`
}

// Tag associates a method or parameter with a field.
type Tag struct {
	Field        string `yaml:"field"`
	Synchronized bool   `yaml:"sync,omitempty"`
}

type ParamDecl struct {
	Name   string    `yaml:"name" validate:"required"`
	Type   kind.Kind `yaml:"type"`
	Setter *Tag      `yaml:"set,omitempty"`
}

type MethodDecl struct {
	Name   string      `yaml:"name" validate:"required"`
	Params []ParamDecl `yaml:"params,omitempty" validate:"dive"`
	// Returns is Invalid for methods without a result.
	Returns kind.Kind `yaml:"returns,omitempty"`
	Getter  *Tag      `yaml:"get,omitempty"`
}

// Tagged reports whether any tag is attached to the method or its parameters.
func (m MethodDecl) Tagged() bool {
	if m.Getter != nil {
		return true
	}

	for _, p := range m.Params {
		if p.Setter != nil {
			return true
		}
	}

	return false
}

// QualifiedName is Namespace.Name, or Name alone without a namespace.
func (d *Descriptor) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}

	return d.Namespace + "." + d.Name
}

func (d *Descriptor) String() string {
	return d.QualifiedName()
}

// Fingerprint hashes the canonical YAML form of the descriptor. Descriptors
// with equal fingerprints declare the same shape.
func (d *Descriptor) Fingerprint() uint64 {
	data, err := yaml.Marshal(d)
	if err != nil {
		return xxh3.HashString(fmt.Sprintf("%#v", d))
	}

	return xxh3.Hash(data)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural requirements of d: a name, and a name for
// every method and parameter. Field and accessor consistency is checked by
// synthesis.
func Validate(d *Descriptor) error {
	if d == nil {
		return fmt.Errorf("descriptor is nil")
	}

	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("descriptor %s: %w", d.QualifiedName(), err)
	}

	return nil
}

// Set tags a parameter as writing field.
func Set(param string, k kind.Kind, field string) ParamDecl {
	return ParamDecl{Name: param, Type: k, Setter: &Tag{Field: field}}
}

// SyncSet is Set with synchronized access.
func SyncSet(param string, k kind.Kind, field string) ParamDecl {
	return ParamDecl{Name: param, Type: k, Setter: &Tag{Field: field, Synchronized: true}}
}

// Setter declares a single-parameter method that writes field.
func Setter(method, field string, k kind.Kind) MethodDecl {
	return MethodDecl{Name: method, Params: []ParamDecl{Set(field, k, field)}}
}

// Getter declares a method that returns field.
func Getter(method, field string, k kind.Kind) MethodDecl {
	return MethodDecl{Name: method, Returns: k, Getter: &Tag{Field: field}}
}

// Field declares a field named name.
func Field(name string, k kind.Kind) FieldDecl {
	return FieldDecl{Value: name, Type: k}
}
