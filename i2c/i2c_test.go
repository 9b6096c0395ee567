package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BroderickCarlin/regiface"
)

// fakeBus records the transactions driven against it and plays back a canned
// response into the read half.
type fakeBus struct {
	calls int
	addr  uint16
	w     []byte
	rlen  int
	resp  []byte
	err   error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.calls++
	b.addr = addr
	b.w = append([]byte(nil), w...)
	b.rlen = len(r)
	if b.err != nil {
		return b.err
	}
	copy(r, b.resp)
	return nil
}

type fakeContextBus struct {
	fakeBus
	ctx context.Context
}

func (b *fakeContextBus) TxContext(ctx context.Context, addr uint16, w, r []byte) error {
	b.ctx = ctx
	return b.Tx(addr, w, r)
}

// identityReg is a one-byte register at 0x2A whose codec returns the raw
// byte unchanged.
type identityReg struct {
	value byte
}

func (identityReg) RegisterID() regiface.ID { return regiface.ID8(0x2A) }
func (identityReg) WireSize() int           { return 1 }

func (r *identityReg) DecodeBytes(buf []byte) error {
	r.value = buf[0]
	return nil
}

func (r identityReg) EncodeBytes() ([]byte, error) {
	return []byte{r.value}, nil
}

var errBadMode = errors.New("reserved mode bits set")

// modeReg rejects byte patterns outside its enumeration.
type modeReg struct {
	mode byte
}

func (modeReg) RegisterID() regiface.ID { return regiface.ID8(0x03) }
func (modeReg) WireSize() int           { return 1 }

func (r *modeReg) DecodeBytes(buf []byte) error {
	if buf[0] > 2 {
		return errBadMode
	}
	r.mode = buf[0]
	return nil
}

var errNotRepresentable = errors.New("value not representable")

type badEncodeReg struct{}

func (badEncodeReg) RegisterID() regiface.ID      { return regiface.ID8(0x11) }
func (badEncodeReg) WireSize() int                { return 1 }
func (badEncodeReg) EncodeBytes() ([]byte, error) { return nil, errNotRepresentable }

type oversizedReg struct{}

func (oversizedReg) RegisterID() regiface.ID      { return regiface.ID8(0x12) }
func (oversizedReg) WireSize() int                { return 1 }
func (oversizedReg) EncodeBytes() ([]byte, error) { return []byte{1, 2}, nil }

var decodeCalls int

type countingReg struct{}

func (countingReg) RegisterID() regiface.ID { return regiface.ID8(0x20) }
func (countingReg) WireSize() int           { return 1 }

func (r *countingReg) DecodeBytes([]byte) error {
	decodeCalls++
	return nil
}

// wideReg reads through a two-byte identifier.
type wideReg struct {
	raw uint16
}

func (wideReg) RegisterID() regiface.ID { return regiface.ID16(0x3517) }
func (wideReg) WireSize() int           { return 2 }

func (r *wideReg) DecodeBytes(buf []byte) error {
	r.raw = uint16(buf[0])<<8 | uint16(buf[1])
	return nil
}

// resetCmd invokes command 0x55 with a one-byte argument and no response.
type resetCmd struct {
	hard bool
}

func (resetCmd) CommandID() regiface.ID { return regiface.ID8(0x55) }

func (c resetCmd) InvokingParameters() regiface.Encodable {
	if c.hard {
		return identityReg{value: 0x01}
	}
	return identityReg{value: 0x00}
}

type pingCmd struct{}

func (pingCmd) CommandID() regiface.ID { return regiface.ID8(0x0F) }

func (pingCmd) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

func TestReadRegister(t *testing.T) {
	bus := &fakeBus{resp: []byte{0x07}}
	v, err := ReadRegister[identityReg](bus, 0x48)
	require.NoError(t, err)
	assert.Equal(t, byte(7), v.value)
	assert.Equal(t, 1, bus.calls)
	assert.Equal(t, uint16(0x48), bus.addr)
	assert.Equal(t, []byte{0x2A}, bus.w)
	assert.Equal(t, 1, bus.rlen)
}

func TestReadRegister_WideID(t *testing.T) {
	bus := &fakeBus{resp: []byte{0x12, 0x34}}
	v, err := ReadRegister[wideReg](bus, 0x70)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v.raw)
	assert.Equal(t, []byte{0x35, 0x17}, bus.w)
	assert.Equal(t, 2, bus.rlen)
}

func TestReadRegister_TransportError(t *testing.T) {
	native := errors.New("nack")
	bus := &fakeBus{err: native}
	decodeCalls = 0
	_, err := ReadRegister[countingReg](bus, 0x20)
	var terr *regiface.TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, native)
	assert.Equal(t, 0, decodeCalls)
}

func TestReadRegister_DecodeError(t *testing.T) {
	bus := &fakeBus{resp: []byte{0xFF}}
	_, err := ReadRegister[modeReg](bus, 0x03)
	var derr *regiface.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, errBadMode)
}

func TestWriteRegister(t *testing.T) {
	bus := &fakeBus{}
	err := WriteRegister(bus, 0x48, identityReg{value: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, bus.calls)
	assert.Equal(t, []byte{0x2A, 0x09}, bus.w)
	assert.Equal(t, 0, bus.rlen)
}

func TestWriteRegister_EncodeErrorSkipsBus(t *testing.T) {
	bus := &fakeBus{}
	err := WriteRegister(bus, 0x48, badEncodeReg{})
	var eerr *regiface.EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.ErrorIs(t, err, errNotRepresentable)
	assert.Equal(t, 0, bus.calls)
}

func TestWriteRegister_SizeMismatch(t *testing.T) {
	bus := &fakeBus{}
	err := WriteRegister(bus, 0x48, oversizedReg{})
	var eerr *regiface.EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.ErrorIs(t, err, regiface.ErrSizeMismatch)
	assert.Equal(t, 0, bus.calls)
}

func TestInvokeCommand(t *testing.T) {
	bus := &fakeBus{resp: []byte{0x01}}
	v, err := InvokeCommand[identityReg](bus, 0x48, resetCmd{hard: true})
	require.NoError(t, err)
	assert.Equal(t, byte(1), v.value)
	assert.Equal(t, 1, bus.calls)
	assert.Equal(t, []byte{0x55, 0x01}, bus.w)
	assert.Equal(t, 1, bus.rlen)
}

func TestInvokeCommand_NoParameters(t *testing.T) {
	bus := &fakeBus{}
	_, err := InvokeCommand[regiface.NoParameters](bus, 0x48, pingCmd{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0F}, bus.w)
	assert.Equal(t, 0, bus.rlen)
}

func TestInvokeCommand_TransportErrorSkipsDecode(t *testing.T) {
	bus := &fakeBus{err: errors.New("arbitration lost")}
	decodeCalls = 0
	_, err := InvokeCommand[countingReg](bus, 0x48, pingCmd{})
	var terr *regiface.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 0, decodeCalls)
}

func TestReadRegisterContext(t *testing.T) {
	bus := &fakeContextBus{fakeBus: fakeBus{resp: []byte{0x07}}}
	ctx := context.Background()
	v, err := ReadRegisterContext[identityReg](ctx, bus, 0x48)
	require.NoError(t, err)
	assert.Equal(t, byte(7), v.value)
	assert.Equal(t, ctx, bus.ctx)
	assert.Equal(t, []byte{0x2A}, bus.w)
}

func TestWriteRegisterContext(t *testing.T) {
	bus := &fakeContextBus{}
	err := WriteRegisterContext(context.Background(), bus, 0x48, identityReg{value: 9})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2A, 0x09}, bus.w)
}

func TestInvokeCommandContext(t *testing.T) {
	bus := &fakeContextBus{fakeBus: fakeBus{resp: []byte{0x00}}}
	v, err := InvokeCommandContext[identityReg](context.Background(), bus, 0x48, resetCmd{})
	require.NoError(t, err)
	assert.Equal(t, byte(0), v.value)
	assert.Equal(t, []byte{0x55, 0x00}, bus.w)
}
