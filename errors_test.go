package regiface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Unwrap(t *testing.T) {
	native := errors.New("nack")

	var terr *TransportError
	err := error(&TransportError{Err: native})
	assert.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, native)

	var eerr *EncodeError
	err = &EncodeError{Err: ErrSizeMismatch}
	assert.ErrorAs(t, err, &eerr)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	var derr *DecodeError
	err = &DecodeError{Err: native}
	assert.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, native)
}

func TestErrors_Distinct(t *testing.T) {
	native := errors.New("nack")
	var eerr *EncodeError
	assert.False(t, errors.As(error(&TransportError{Err: native}), &eerr))
	var terr *TransportError
	assert.False(t, errors.As(error(&DecodeError{Err: native}), &terr))
}
