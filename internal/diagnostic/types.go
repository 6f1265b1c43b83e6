package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"flatstruct/internal/common"
)

// Codes used by descriptor lint.
const (
	CodeInvalidDescriptor = "invalid-descriptor"
	CodeMalformedField    = "malformed-field"
	CodeDuplicateField    = "duplicate-field"
	CodeUnknownField      = "unknown-field"
	CodeTypeMismatch      = "type-mismatch"
	CodeSynthesisFailure  = "synthesis-failure"
	CodeUnusedField       = "unused-field"
	CodeUntaggedMethod    = "untagged-method"
)

// Diagnostics holds all diagnostics of a check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Descriptor is the qualified name of the descriptor, if any.
	Descriptor string
	// Location is the method or field the diagnostic is about, if any.
	Location string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, descriptor, location string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:   SeverityError,
		Code:       code,
		Message:    message,
		Descriptor: descriptor,
		Location:   location,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, descriptor, location string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:   SeverityWarning,
		Code:       code,
		Message:    message,
		Descriptor: descriptor,
		Location:   location,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, descriptor, location string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:   SeverityInfo,
		Code:       code,
		Message:    message,
		Descriptor: descriptor,
		Location:   location,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return !common.IsEmpty(d.Errors)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Descriptor != "" {
		prefix = append(prefix, "["+d.Descriptor+"]")
	}

	if d.Location != "" {
		prefix = append(prefix, d.Location)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if !common.IsEmpty(prefix) {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
