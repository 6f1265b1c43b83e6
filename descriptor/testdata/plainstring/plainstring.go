package plainstring

//flatstruct:struct
type Named interface {
	//flatstruct:set name=NameField
	SetName(name string)
	//flatstruct:get NameField
	GetName() *string
}

//flatstruct:field Named string
const NameField = "name"
