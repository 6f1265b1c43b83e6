package common

import (
	"go/token"
	"path"
	"strings"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// IsIdentifier reports whether name can name a Go field, method or parameter.
// Keywords and the blank identifier cannot.
func IsIdentifier(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// LastSegment returns the part of a dotted name after its last dot.
func LastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}
