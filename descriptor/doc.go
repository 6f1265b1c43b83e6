// Package descriptor is the declarative input of synthesis: a contract listing
// field declarations and the accessor methods that read or write them.
//
// Descriptors are explicit schema values. They can be built in Go, parsed from
// YAML, or loaded from annotated Go interfaces:
//
//	//flatstruct:struct
//	type Point2D interface {
//		//flatstruct:set x=XField
//		SetX(x int32)
//		//flatstruct:get XField sync
//		GetX() int32
//	}
//
//	//flatstruct:field Point2D int32
//	const XField = "x"
package descriptor
