// Package regiface provides the building blocks for writing typed abstractions
// over register based devices. It is most commonly used when writing drivers
// for external peripherals sitting on an I2C or SPI bus: a driver declares,
// once, what each register or command is (its identifier and its fixed-width
// byte encoding) and reuses the read/write/invoke helpers from the i2c and spi
// packages regardless of which transport moves the bytes.
//
// A register value is any type that knows its identifier through the
// [Register] interface. Pairing that with the decode half of the codec
// contract yields a [ReadableRegister]; pairing it with the encode half yields
// a [WritableRegister]. A type may implement both. There is no register
// "object" at runtime; the type itself, named at each call site, stands in
// for the register.
//
// Typical register definition:
//
//	type WhoAmI struct {
//		Value byte
//	}
//
//	func (WhoAmI) RegisterID() regiface.ID { return regiface.ID8(0x0F) }
//	func (WhoAmI) WireSize() int           { return 1 }
//
//	func (r *WhoAmI) DecodeBytes(buf []byte) error {
//		r.Value = buf[0]
//		return nil
//	}
//
// which is then read with
//
//	v, err := i2c.ReadRegister[WhoAmI](bus, 0x6B)
package regiface

// Register is implemented by all types that represent a value stored in an
// addressable device register. It provides minimal value on its own and is a
// building block to be combined with [Decodable] or [Encodable].
type Register interface {
	// RegisterID returns the identifier of the register the type maps to.
	// Implementations must be pure: same value every call, no side effects.
	RegisterID() ID
}

// ReadableRegister is a type that can be retrieved by reading a register.
// Implementations usually put DecodeBytes on the pointer receiver, so *T is
// the readable side of a register type T.
type ReadableRegister interface {
	Register
	Decodable
}

// WritableRegister is a type that can be written into a register.
type WritableRegister interface {
	Register
	Encodable
}

// ReadIDOverride may be implemented by registers that are read through a
// different identifier than the one they are written through (split
// read/write opcodes are common on SPI peripherals).
type ReadIDOverride interface {
	ReadRegisterID() ID
}

// WriteIDOverride is the write-side counterpart of [ReadIDOverride].
type WriteIDOverride interface {
	WriteRegisterID() ID
}

// ReadIDOf resolves the identifier to transmit when reading r.
func ReadIDOf(r Register) ID {
	if o, ok := r.(ReadIDOverride); ok {
		return o.ReadRegisterID()
	}
	return r.RegisterID()
}

// WriteIDOf resolves the identifier to transmit when writing r.
func WriteIDOf(r Register) ID {
	if o, ok := r.(WriteIDOverride); ok {
		return o.WriteRegisterID()
	}
	return r.RegisterID()
}

// ReadablePtr constrains a type parameter to "pointer to T, where *T is a
// readable register". The read helpers use it to construct a T and decode
// into it.
type ReadablePtr[T any] interface {
	*T
	ReadableRegister
}

// DecodablePtr constrains a type parameter to "pointer to T, where *T can be
// decoded from fixed-width bytes". Used for command responses.
type DecodablePtr[T any] interface {
	*T
	Decodable
}
