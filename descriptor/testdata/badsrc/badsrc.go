package badsrc

//flatstruct:struct
type Concrete struct {
	A int64
}

//flatstruct:struct
type Numbered interface {
	//flatstruct:get Seven
	GetSeven() int64
}

//flatstruct:field Numbered int64
const Seven = 7

//flatstruct:field Concrete int64
const A = "a"
