package descriptor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatstruct/kind"
)

func TestLoadFile_Person(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Descriptors, 1)

	d := f.Descriptors[0]
	assert.Equal(t, "example.Person", d.QualifiedName())
	assert.Equal(t, FormContract, d.Form)
	assert.Equal(t, filepath.Join("testdata", "person.yaml"), d.Origin)

	require.Len(t, d.Fields, 2)
	assert.Equal(t, FieldDecl{Const: "NAME_FIELD_NAME", Value: "name", Type: kind.KindString, Volatile: true}, d.Fields[0])
	assert.Equal(t, kind.KindInt32, d.Fields[1].Type)

	require.Len(t, d.Methods, 4)
	assert.Equal(t, "name", d.Methods[0].Params[0].Setter.Field)
	assert.Equal(t, kind.KindString, d.Methods[1].Returns)
	assert.Equal(t, "name", d.Methods[1].Getter.Field)
	assert.False(t, d.Methods[1].Getter.Synchronized)
}

func TestLoadFile_Point2DSynchronized(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "point2d.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Descriptors, 1)

	d := f.Descriptors[0]
	assert.Equal(t, "1", f.Version)

	setXY := d.Methods[4]
	assert.Equal(t, "SetXY", setXY.Name)
	require.NotNil(t, setXY.Getter)
	assert.True(t, setXY.Getter.Synchronized)
	require.Len(t, setXY.Params, 2)
	assert.True(t, setXY.Params[1].Setter.Synchronized)
	assert.Equal(t, "y", setXY.Params[1].Setter.Field)

	assert.False(t, d.Methods[6].Tagged())
}

func TestLoadFile_BrokenDecodesAsIs(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	d := f.Descriptors[0]
	assert.Equal(t, FormConcrete, d.Form)
	assert.Equal(t, 7, d.Fields[2].Value)
	assert.Equal(t, kind.Invalid, d.Fields[3].Type)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("descriptors: [name: {"))
	assert.Error(t, err)

	_, err = Parse([]byte("descriptors:\n  - name: X\n    form: enum\n"))
	assert.Error(t, err)
}

func TestParse_DefaultsConstToName(t *testing.T) {
	f, err := Parse([]byte("descriptors:\n  - name: X\n    fields:\n      - {name: a, type: int}\n"))
	require.NoError(t, err)
	assert.Equal(t, "a", f.Descriptors[0].Fields[0].Const)
}

func TestMarshal_RoundTrip(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "point2d.yaml"))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f.Descriptors[0].Fingerprint(), back.Descriptors[0].Fingerprint())
}

func TestWriteFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, out))

	back, err := LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, f.Descriptors[0].Fingerprint(), back.Descriptors[0].Fingerprint())
}
