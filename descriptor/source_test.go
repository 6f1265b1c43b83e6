package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatstruct/kind"
)

func TestLoadPackages_Shapes(t *testing.T) {
	ds, err := LoadPackages("flatstruct/examples/shapes")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	person := ds[0]
	assert.Equal(t, "flatstruct/examples/shapes.Person", person.QualifiedName())
	assert.Equal(t, "flatstruct/examples/shapes", person.ImportPath)
	assert.Equal(t, FormContract, person.Form)

	require.Len(t, person.Fields, 2)
	assert.Equal(t, FieldDecl{Const: "NameField", Value: "name", Type: kind.KindString, Volatile: true}, person.Fields[0])
	assert.Equal(t, FieldDecl{Const: "AgeField", Value: "age", Type: kind.KindInt32, Volatile: true}, person.Fields[1])

	require.Len(t, person.Methods, 4)
	setName := person.Methods[0]
	assert.Equal(t, "SetName", setName.Name)
	require.Len(t, setName.Params, 1)
	assert.Equal(t, kind.KindString, setName.Params[0].Type)
	assert.Equal(t, &Tag{Field: "name"}, setName.Params[0].Setter)
	assert.Equal(t, kind.KindInt32, person.Methods[3].Returns)
	assert.Equal(t, &Tag{Field: "age"}, person.Methods[3].Getter)
}

func TestLoadPackages_Point2DCombinedAccessor(t *testing.T) {
	ds, err := LoadPackages("flatstruct/examples/shapes")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	point := ds[1]
	assert.Equal(t, "Point2D", point.Name)

	var setXY *MethodDecl
	for i := range point.Methods {
		if point.Methods[i].Name == "SetXY" {
			setXY = &point.Methods[i]
		}
	}
	require.NotNil(t, setXY)

	assert.Equal(t, &Tag{Field: "x", Synchronized: true}, setXY.Getter)
	assert.Equal(t, kind.KindInt32, setXY.Returns)
	require.Len(t, setXY.Params, 2)
	assert.Equal(t, &Tag{Field: "x", Synchronized: true}, setXY.Params[0].Setter)
	assert.Equal(t, &Tag{Field: "y", Synchronized: true}, setXY.Params[1].Setter)
}

func TestLoadPackages_ConcreteAndNonStringConstants(t *testing.T) {
	ds, err := LoadPackages("./testdata/badsrc")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	concrete := ds[0]
	assert.Equal(t, "Concrete", concrete.Name)
	assert.Equal(t, FormConcrete, concrete.Form)
	assert.Empty(t, concrete.Methods)

	numbered := ds[1]
	require.Len(t, numbered.Fields, 1)
	assert.Equal(t, int64(7), numbered.Fields[0].Value)
	assert.Equal(t, "Seven", numbered.Methods[0].Getter.Field)
}

func TestLoadPackages_Missing(t *testing.T) {
	_, err := LoadPackages("./testdata/does-not-exist")
	assert.Error(t, err)
}

func TestLoadPackages_PlainStringAccessor(t *testing.T) {
	ds, err := LoadPackages("./testdata/plainstring")
	require.NoError(t, err)
	require.Len(t, ds, 1)

	setName := ds[0].Methods[0]
	assert.Equal(t, kind.Invalid, setName.Params[0].Type)
	assert.Equal(t, kind.KindString, ds[0].Methods[1].Returns)

	diags := Lint(ds[0])
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "declared as *string")
	assert.NotContains(t, diags.Errors[0].Message, "instead of invalid")
}
