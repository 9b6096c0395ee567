package regiface

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch reports an encoder that produced a buffer of a length other
// than its declared WireSize. It surfaces wrapped in an [EncodeError].
var ErrSizeMismatch = errors.New("encoded length does not match declared wire size")

// TransportError wraps the bus-specific error returned by a failed
// transaction. The native error is recoverable through errors.Unwrap /
// errors.As.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bus transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EncodeError wraps the codec error returned when a value could not be
// serialized for transmission. When an operation fails with an EncodeError,
// the bus was never touched.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("value encoding failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError wraps the codec error returned when bytes received from the
// bus were not a valid representation of the target type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("response decoding failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
