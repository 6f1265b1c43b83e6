package synth

import (
	"flatstruct/descriptor"
	"flatstruct/kind"
)

func personDescriptor() *descriptor.Descriptor {
	name := descriptor.Field("name", kind.KindString)
	name.Const, name.Volatile = "NAME_FIELD_NAME", true

	age := descriptor.Field("age", kind.KindInt32)
	age.Const, age.Volatile = "AGE_FIELD_NAME", true

	return &descriptor.Descriptor{
		Namespace: "example",
		Name:      "Person",
		Fields:    []descriptor.FieldDecl{name, age},
		Methods: []descriptor.MethodDecl{
			descriptor.Setter("SetName", "name", kind.KindString),
			descriptor.Getter("GetName", "name", kind.KindString),
			descriptor.Setter("SetAge", "age", kind.KindInt32),
			descriptor.Getter("GetAge", "age", kind.KindInt32),
		},
	}
}

func point2DDescriptor() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		Namespace: "example.structure",
		Name:      "Point2D",
		Fields: []descriptor.FieldDecl{
			descriptor.Field("x", kind.KindInt32),
			descriptor.Field("y", kind.KindInt32),
		},
		Methods: []descriptor.MethodDecl{
			descriptor.Setter("SetX", "x", kind.KindInt32),
			descriptor.Getter("GetX", "x", kind.KindInt32),
			descriptor.Setter("SetY", "y", kind.KindInt32),
			descriptor.Getter("GetY", "y", kind.KindInt32),
			{
				Name: "SetXY",
				Params: []descriptor.ParamDecl{
					descriptor.SyncSet("x", kind.KindInt32, "x"),
					descriptor.SyncSet("y", kind.KindInt32, "y"),
				},
				Returns: kind.KindInt32,
				Getter:  &descriptor.Tag{Field: "x", Synchronized: true},
			},
			{Name: "Describe", Returns: kind.KindString},
		},
	}
}

// everyKind declares one field of each kind with a setter and getter apiece.
func everyKind() *descriptor.Descriptor {
	d := &descriptor.Descriptor{Name: "Everything"}

	for k := kind.KindBool; int(k) < kind.KindTotal; k++ {
		name := "f" + k.String()
		d.Fields = append(d.Fields, descriptor.Field(name, k))
		d.Methods = append(d.Methods,
			descriptor.Setter("Set"+k.String(), name, k),
			descriptor.Getter("Get"+k.String(), name, k),
		)
	}

	return d
}
