package regiface

// Encodable is the encode half of the codec contract: a value with a fixed
// wire width that can be turned into exactly that many bytes.
//
// WireSize must be a constant of the type. EncodeBytes fails only when the
// value cannot be represented on the wire; most codecs are infallible. The
// byte order within the buffer is entirely the codec's choice, this layer
// never inspects payload bytes.
type Encodable interface {
	// WireSize returns the fixed number of bytes the value occupies on the
	// wire.
	WireSize() int
	// EncodeBytes returns the wire representation of the value. On success
	// the result is exactly WireSize bytes long.
	EncodeBytes() ([]byte, error)
}

// Decodable is the decode half of the codec contract. DecodeBytes is always
// called with exactly WireSize bytes, so implementations never need to length
// check; it fails only when the byte pattern is not a valid representation of
// the type (out of range enumerations, reserved bit patterns).
type Decodable interface {
	WireSize() int
	DecodeBytes(buf []byte) error
}

// NoParameters is the empty payload marker, usable as command parameters
// and/or response for commands that carry none. It encodes to and decodes
// from zero bytes.
type NoParameters struct{}

func (NoParameters) WireSize() int { return 0 }

func (NoParameters) EncodeBytes() ([]byte, error) { return nil, nil }

func (*NoParameters) DecodeBytes([]byte) error { return nil }

// Zeros is an encode-only parameter payload of n zero bytes, for commands
// that must be padded with fixed filler.
type Zeros int

func (z Zeros) WireSize() int { return int(z) }

func (z Zeros) EncodeBytes() ([]byte, error) { return make([]byte, z), nil }
