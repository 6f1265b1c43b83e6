package synth

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDescriptor         = errors.New("invalid descriptor")
	ErrMalformedFieldDeclaration = errors.New("malformed field declaration")
	ErrDuplicateField            = errors.New("duplicate field")
	ErrUnknownField              = errors.New("unknown field")
	ErrFieldTypeMismatch         = errors.New("field type mismatch")
	ErrSynthesisFailure          = errors.New("synthesis failure")
	ErrInstantiationFailure      = errors.New("instantiation failure")

	ErrUnknownMethod = errors.New("unknown method")
	ErrArgument      = errors.New("invalid argument")
)

// Error reports a failed synthesis, instantiation or call with enough context
// to diagnose it without looking at generated internals.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind       error
	Descriptor string
	Method     string
	Field      string
	Detail     string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Kind.Error())
	if e.Descriptor != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Descriptor)
	}

	if e.Method != "" {
		sb.WriteString(" method ")
		sb.WriteString(e.Method)
	}

	if e.Field != "" {
		sb.WriteString(" field '")
		sb.WriteString(e.Field)
		sb.WriteString("'")
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// wrapFailure turns an error from a target into a SynthesisFailure unless it
// already carries a kind.
func wrapFailure(descriptor string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return err
	}

	return &Error{Kind: ErrSynthesisFailure, Descriptor: descriptor, Err: err}
}
