// Package gen renders synthesized implementations as Go source.
//
// The same synthesizers that drive runtime synthesis emit into a source
// builder here, so a descriptor that fails at runtime fails generation with
// the same error. Each descriptor becomes one file holding the backing
// struct, its accessors and, for the value flavor, Equal, Hash and String.
//
// Output is rendered with text/template and formatted with
// golang.org/x/tools/imports.
package gen
