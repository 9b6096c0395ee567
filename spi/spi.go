// Package spi implements the register and command operations for
// chip-select serial buses. There is no device address parameter on this bus
// family: the register or command identifier travels as the leading bytes of
// the buffer exchanged with whichever peer the chip select has picked.
package spi

import (
	"context"

	"github.com/BroderickCarlin/regiface"
)

// Conn is the blocking transaction primitive required from a chip-select
// serial connection. Tx transmits w and then reads len(r) bytes, all within
// one chip-select window. Full-duplex implementations are expected to pad
// the exchange internally; half-duplex implementations perform the write
// phase followed by the read phase. r may be nil for a write-only exchange.
type Conn interface {
	Tx(w, r []byte) error
}

// ContextConn is the suspending counterpart of [Conn].
type ContextConn interface {
	TxContext(ctx context.Context, w, r []byte) error
}

// ReadRegister reads the register represented by T from the selected peer.
// The outgoing buffer carries the register's identifier bytes; exactly T's
// wire size is read back in the same chip-select window.
func ReadRegister[T any, PT regiface.ReadablePtr[T]](conn Conn) (T, error) {
	var value T
	reg := PT(&value)
	buf := make([]byte, reg.WireSize())
	if err := conn.Tx(regiface.ReadIDOf(reg).IDBytes(), buf); err != nil {
		return value, &regiface.TransportError{Err: err}
	}
	if err := reg.DecodeBytes(buf); err != nil {
		return value, &regiface.DecodeError{Err: err}
	}
	return value, nil
}

// ReadRegisterContext is [ReadRegister] over a suspending connection.
func ReadRegisterContext[T any, PT regiface.ReadablePtr[T]](ctx context.Context, conn ContextConn) (T, error) {
	var value T
	reg := PT(&value)
	buf := make([]byte, reg.WireSize())
	if err := conn.TxContext(ctx, regiface.ReadIDOf(reg).IDBytes(), buf); err != nil {
		return value, &regiface.TransportError{Err: err}
	}
	if err := reg.DecodeBytes(buf); err != nil {
		return value, &regiface.DecodeError{Err: err}
	}
	return value, nil
}

// WriteRegister writes reg to the selected peer as one outbound buffer of
// the register's identifier bytes followed by its encoded value. If encoding
// fails the bus is never touched.
func WriteRegister(conn Conn, reg regiface.WritableRegister) error {
	frame, err := writeFrame(reg)
	if err != nil {
		return err
	}
	if err := conn.Tx(frame, nil); err != nil {
		return &regiface.TransportError{Err: err}
	}
	return nil
}

// WriteRegisterContext is [WriteRegister] over a suspending connection.
func WriteRegisterContext(ctx context.Context, conn ContextConn, reg regiface.WritableRegister) error {
	frame, err := writeFrame(reg)
	if err != nil {
		return err
	}
	if err := conn.TxContext(ctx, frame, nil); err != nil {
		return &regiface.TransportError{Err: err}
	}
	return nil
}

// InvokeCommand invokes cmd on the selected peer and decodes its response
// into R. The outbound buffer is the command identifier followed by the
// encoded invocation parameters; R's wire size is then read as the trailing
// bytes of the exchange. A zero-width response skips the read phase
// entirely.
func InvokeCommand[R any, PR regiface.DecodablePtr[R]](conn Conn, cmd regiface.Command) (R, error) {
	var resp R
	out := PR(&resp)
	frame, err := commandFrame(cmd)
	if err != nil {
		return resp, err
	}
	var buf []byte
	if n := out.WireSize(); n > 0 {
		buf = make([]byte, n)
	}
	if err := conn.Tx(frame, buf); err != nil {
		return resp, &regiface.TransportError{Err: err}
	}
	if err := out.DecodeBytes(buf); err != nil {
		return resp, &regiface.DecodeError{Err: err}
	}
	return resp, nil
}

// InvokeCommandContext is [InvokeCommand] over a suspending connection.
func InvokeCommandContext[R any, PR regiface.DecodablePtr[R]](ctx context.Context, conn ContextConn, cmd regiface.Command) (R, error) {
	var resp R
	out := PR(&resp)
	frame, err := commandFrame(cmd)
	if err != nil {
		return resp, err
	}
	var buf []byte
	if n := out.WireSize(); n > 0 {
		buf = make([]byte, n)
	}
	if err := conn.TxContext(ctx, frame, buf); err != nil {
		return resp, &regiface.TransportError{Err: err}
	}
	if err := out.DecodeBytes(buf); err != nil {
		return resp, &regiface.DecodeError{Err: err}
	}
	return resp, nil
}

func writeFrame(reg regiface.WritableRegister) ([]byte, error) {
	payload, err := reg.EncodeBytes()
	if err != nil {
		return nil, &regiface.EncodeError{Err: err}
	}
	if len(payload) != reg.WireSize() {
		return nil, &regiface.EncodeError{Err: regiface.ErrSizeMismatch}
	}
	id := regiface.WriteIDOf(reg).IDBytes()
	frame := make([]byte, 0, len(id)+len(payload))
	frame = append(frame, id...)
	return append(frame, payload...), nil
}

func commandFrame(cmd regiface.Command) ([]byte, error) {
	params := cmd.InvokingParameters()
	payload, err := params.EncodeBytes()
	if err != nil {
		return nil, &regiface.EncodeError{Err: err}
	}
	if len(payload) != params.WireSize() {
		return nil, &regiface.EncodeError{Err: regiface.ErrSizeMismatch}
	}
	id := cmd.CommandID().IDBytes()
	frame := make([]byte, 0, len(id)+len(payload))
	frame = append(frame, id...)
	return append(frame, payload...), nil
}
