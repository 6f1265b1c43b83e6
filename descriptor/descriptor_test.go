package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatstruct/kind"
)

func personDescriptor() *Descriptor {
	return &Descriptor{
		Namespace: "example",
		Name:      "Person",
		Fields: []FieldDecl{
			{Const: "NAME_FIELD_NAME", Value: "name", Type: kind.KindString, Volatile: true},
			{Const: "AGE_FIELD_NAME", Value: "age", Type: kind.KindInt32, Volatile: true},
		},
		Methods: []MethodDecl{
			Setter("SetName", "name", kind.KindString),
			Getter("GetName", "name", kind.KindString),
			Setter("SetAge", "age", kind.KindInt32),
			Getter("GetAge", "age", kind.KindInt32),
		},
	}
}

func TestDescriptor_QualifiedName(t *testing.T) {
	d := personDescriptor()
	assert.Equal(t, "example.Person", d.QualifiedName())

	d.Namespace = ""
	assert.Equal(t, "Person", d.QualifiedName())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(personDescriptor()))

	assert.Error(t, Validate(nil))

	noName := personDescriptor()
	noName.Name = ""
	assert.Error(t, Validate(noName))

	noParamName := personDescriptor()
	noParamName.Methods[0].Params[0].Name = ""
	err := Validate(noParamName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example.Person")
}

func TestMethodDecl_Tagged(t *testing.T) {
	assert.True(t, Setter("SetA", "a", kind.KindInt).Tagged())
	assert.True(t, Getter("GetA", "a", kind.KindInt).Tagged())

	plain := MethodDecl{Name: "Describe", Returns: kind.KindString, Params: []ParamDecl{{Name: "x", Type: kind.KindInt}}}
	assert.False(t, plain.Tagged())
}

func TestDescriptor_Fingerprint(t *testing.T) {
	a, b := personDescriptor(), personDescriptor()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Fields[1].Type = kind.KindInt64
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// Origin is not part of the shape.
	c := personDescriptor()
	c.Origin = "somewhere.yaml"
	assert.Equal(t, a.Fingerprint(), c.Fingerprint())
}

func TestForm_Text(t *testing.T) {
	var f Form
	require.NoError(t, f.UnmarshalText([]byte("struct")))
	assert.Equal(t, FormConcrete, f)
	require.NoError(t, f.UnmarshalText([]byte("interface")))
	assert.Equal(t, FormContract, f)
	assert.Error(t, f.UnmarshalText([]byte("enum")))
	assert.Equal(t, "Form(9)", Form(9).String())
}
