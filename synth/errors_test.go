package synth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")

	err := &Error{
		Kind:       ErrFieldTypeMismatch,
		Descriptor: "example.Person",
		Method:     "SetAge",
		Field:      "age",
		Detail:     "field has type int32 instead of int64",
		Err:        cause,
	}

	assert.Equal(t,
		"field type mismatch in example.Person method SetAge field 'age': field has type int32 instead of int64: boom",
		err.Error())
	assert.ErrorIs(t, err, ErrFieldTypeMismatch)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnknownField)

	assert.Equal(t, "invalid descriptor", (&Error{Kind: ErrInvalidDescriptor}).Error())
}

func TestWrapFailure(t *testing.T) {
	kinded := &Error{Kind: ErrDuplicateField}
	assert.Same(t, kinded, wrapFailure("d", kinded))

	err := wrapFailure("d", errors.New("reflect said no"))
	assert.ErrorIs(t, err, ErrSynthesisFailure)
	assert.Contains(t, err.Error(), "reflect said no")
}
