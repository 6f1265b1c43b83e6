// Package assembler accumulates the parts of one method (modifiers, return
// type, parameters and body lines) and materializes them into a target type.
//
// It performs no validation: synthesizers decide what is legal.
package assembler

import (
	"fmt"
	"slices"
	"strings"
)

// Op is the structural meaning of a body line. Textual targets render Text;
// other targets execute the Op over the line's Operands.
type Op int

const (
	// OpRaw has no structural meaning; only textual targets use it.
	OpRaw Op = iota
	// OpAssign stores param Operands[1] into field Operands[0].
	OpAssign
	// OpGuardedAssign is OpAssign under the instance monitor.
	OpGuardedAssign
	// OpReturn returns field Operands[0].
	OpReturn

	// OpRejectNil returns false when the argument is nil.
	OpRejectNil
	// OpAcceptSame returns true when the argument is the receiver.
	OpAcceptSame
	// OpRejectForeign returns false when the argument has another type.
	OpRejectForeign
	// OpCompareField returns false when field Operands[0] differs.
	OpCompareField
	// OpAccept returns true.
	OpAccept

	// OpHashSeed starts the hash accumulator.
	OpHashSeed
	// OpHashField folds field Operands[0] into the accumulator.
	OpHashField
	// OpHashResult returns the accumulator.
	OpHashResult

	// OpHeader starts the string representation.
	OpHeader
	// OpFormatField renders field Operands[0].
	OpFormatField
	// OpFooter closes and returns the string representation.
	OpFooter
)

// Modifier adjusts how a method is materialized.
type Modifier string

const (
	// Synchronized holds the instance monitor for the whole method.
	Synchronized Modifier = "synchronized"
)

type Param struct {
	Name string
	Type string
}

// Line is one body statement.
type Line struct {
	Op       Op
	Text     string
	Operands []string
}

// Target receives finished methods.
type Target interface {
	AddMethod(m *Method) error
}

type Method struct {
	name       string
	modifiers  []Modifier
	returnType string
	params     []Param
	body       []Line
}

func New(name string) *Method {
	return &Method{name: name}
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) AddModifier(mod Modifier) *Method {
	if !slices.Contains(m.modifiers, mod) {
		m.modifiers = append(m.modifiers, mod)
	}

	return m
}

func (m *Method) Has(mod Modifier) bool {
	return slices.Contains(m.modifiers, mod)
}

func (m *Method) Modifiers() []Modifier {
	return slices.Clone(m.modifiers)
}

// SetReturnType sets the result type; empty means no result.
func (m *Method) SetReturnType(t string) *Method {
	m.returnType = t
	return m
}

func (m *Method) ReturnType() string {
	return m.returnType
}

func (m *Method) AddParam(name, typ string) *Method {
	m.params = append(m.params, Param{Name: name, Type: typ})
	return m
}

func (m *Method) Params() []Param {
	return slices.Clone(m.params)
}

// AddLine appends a body line whose text is format with operands substituted
// positionally.
func (m *Method) AddLine(op Op, format string, operands ...string) *Method {
	args := make([]any, len(operands))
	for i, o := range operands {
		args[i] = o
	}

	m.body = append(m.body, Line{
		Op:       op,
		Text:     fmt.Sprintf(format, args...),
		Operands: operands,
	})

	return m
}

// AddRaw appends a textual line with fmt-style substitution.
func (m *Method) AddRaw(format string, args ...any) *Method {
	m.body = append(m.body, Line{Op: OpRaw, Text: fmt.Sprintf(format, args...)})
	return m
}

func (m *Method) Body() []Line {
	return slices.Clone(m.body)
}

// Signature renders "Name(a T, b U) R".
func (m *Method) Signature() string {
	params := make([]string, len(m.params))
	for i, p := range m.params {
		params[i] = p.Name + " " + p.Type
	}

	sig := m.name + "(" + strings.Join(params, ", ") + ")"
	if m.returnType != "" {
		sig += " " + m.returnType
	}

	return sig
}

// AddTo materializes the method into t.
func (m *Method) AddTo(t Target) error {
	return t.AddMethod(m)
}
