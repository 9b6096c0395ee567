// Package i2c implements the register and command operations for addressed
// two-wire buses. Every operation comes in a blocking variant, whose bus
// contract is satisfied directly by a periph.io i2c.Bus, and a Context
// variant for transports that suspend on the transaction (USB bridges,
// remote buses).
package i2c

import (
	"context"

	"github.com/BroderickCarlin/regiface"
)

// Bus is the blocking transaction primitive required from an addressed bus.
// Tx writes w to the device at addr and, when r is non-empty, reads
// len(r) bytes back as the second half of the same bus transaction. Either
// slice may be nil for a pure read or pure write.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// ContextBus is the suspending counterpart of [Bus]. Implementations yield
// to the caller's scheduler for the duration of the transfer; cancellation
// and timeout semantics are theirs to define.
type ContextBus interface {
	TxContext(ctx context.Context, addr uint16, w, r []byte) error
}

// ReadRegister reads the register represented by T from the device at addr.
//
// The transaction writes the register's identifier bytes and reads exactly
// T's wire size back. The received bytes are decoded only after the
// transport reports success.
func ReadRegister[T any, PT regiface.ReadablePtr[T]](bus Bus, addr uint16) (T, error) {
	var value T
	reg := PT(&value)
	buf := make([]byte, reg.WireSize())
	if err := bus.Tx(addr, regiface.ReadIDOf(reg).IDBytes(), buf); err != nil {
		return value, &regiface.TransportError{Err: err}
	}
	if err := reg.DecodeBytes(buf); err != nil {
		return value, &regiface.DecodeError{Err: err}
	}
	return value, nil
}

// ReadRegisterContext is [ReadRegister] over a suspending bus.
func ReadRegisterContext[T any, PT regiface.ReadablePtr[T]](ctx context.Context, bus ContextBus, addr uint16) (T, error) {
	var value T
	reg := PT(&value)
	buf := make([]byte, reg.WireSize())
	if err := bus.TxContext(ctx, addr, regiface.ReadIDOf(reg).IDBytes(), buf); err != nil {
		return value, &regiface.TransportError{Err: err}
	}
	if err := reg.DecodeBytes(buf); err != nil {
		return value, &regiface.DecodeError{Err: err}
	}
	return value, nil
}

// WriteRegister writes reg to the device at addr as a single transaction of
// the register's identifier bytes followed by its encoded value. If encoding
// fails the bus is never touched.
func WriteRegister(bus Bus, addr uint16, reg regiface.WritableRegister) error {
	frame, err := writeFrame(reg)
	if err != nil {
		return err
	}
	if err := bus.Tx(addr, frame, nil); err != nil {
		return &regiface.TransportError{Err: err}
	}
	return nil
}

// WriteRegisterContext is [WriteRegister] over a suspending bus.
func WriteRegisterContext(ctx context.Context, bus ContextBus, addr uint16, reg regiface.WritableRegister) error {
	frame, err := writeFrame(reg)
	if err != nil {
		return err
	}
	if err := bus.TxContext(ctx, addr, frame, nil); err != nil {
		return &regiface.TransportError{Err: err}
	}
	return nil
}

// InvokeCommand invokes cmd on the device at addr and decodes its response
// into R. The transaction writes the command identifier followed by the
// encoded invocation parameters, then reads exactly R's wire size back.
// Encoding failures short-circuit before the bus is touched; the response is
// decoded only after transport success.
func InvokeCommand[R any, PR regiface.DecodablePtr[R]](bus Bus, addr uint16, cmd regiface.Command) (R, error) {
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
	if err := bus.Tx(addr, frame, buf); err != nil {
		return resp, &regiface.TransportError{Err: err}
	}
	if err := out.DecodeBytes(buf); err != nil {
		return resp, &regiface.DecodeError{Err: err}
	}
	return resp, nil
}

// InvokeCommandContext is [InvokeCommand] over a suspending bus.
func InvokeCommandContext[R any, PR regiface.DecodablePtr[R]](ctx context.Context, bus ContextBus, addr uint16, cmd regiface.Command) (R, error) {
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
	if err := bus.TxContext(ctx, addr, frame, buf); err != nil {
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
