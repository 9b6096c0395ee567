package regiface

import "encoding/binary"

// ID is the static identifier naming a register or command within a device's
// address space. Identifier serialization never fails; multi-byte identifiers
// go out MSB first, matching the convention of the devices this library
// models.
type ID interface {
	// IDBytes returns the identifier's wire representation.
	IDBytes() []byte
}

// ID8 is a single-byte register or command identifier.
type ID8 uint8

func (id ID8) IDBytes() []byte {
	return []byte{byte(id)}
}

// ID16 is a two-byte, big-endian register or command identifier.
type ID16 uint16

func (id ID16) IDBytes() []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(id))
	return buf
}

// ID32 is a four-byte, big-endian register or command identifier.
type ID32 uint32

func (id ID32) IDBytes() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(id))
	return buf
}
