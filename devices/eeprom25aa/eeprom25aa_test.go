package eeprom25aa

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn replays one canned response per chip-select window.
type fakeConn struct {
	frames [][]byte
	resps  [][]byte
}

func (c *fakeConn) Tx(w, r []byte) error {
	c.frames = append(c.frames, append([]byte(nil), w...))
	if len(c.resps) > 0 {
		copy(r, c.resps[0])
		c.resps = c.resps[1:]
	}
	return nil
}

func TestStatus_Decode(t *testing.T) {
	tests := []struct {
		given    byte
		expected Status
	}{
		{0x00, Status{}},
		{0x01, Status{WriteInProgress: true}},
		{0x03, Status{WriteInProgress: true, WriteEnabled: true}},
		{0x0C, Status{BlockProtection: 3}},
	}
	for _, test := range tests {
		var status Status
		require.NoError(t, status.DecodeBytes([]byte{test.given}))
		assert.Equal(t, test.expected, status)
	}
}

func TestDevice_Status_UsesRDSR(t *testing.T) {
	conn := &fakeConn{resps: [][]byte{{0x02}}}
	dev := New(conn)
	status, err := dev.Status()
	require.NoError(t, err)
	assert.True(t, status.WriteEnabled)
	require.Len(t, conn.frames, 1)
	assert.Equal(t, []byte{0x05}, conn.frames[0])
}

func TestDevice_SetBlockProtection_UsesWRSR(t *testing.T) {
	conn := &fakeConn{}
	dev := New(conn)
	require.NoError(t, dev.SetBlockProtection(2))
	require.Len(t, conn.frames, 1)
	assert.Equal(t, []byte{0x01, 0x08}, conn.frames[0])

	assert.Error(t, dev.SetBlockProtection(4))
	assert.Len(t, conn.frames, 1)
}

func TestDevice_EraseChip(t *testing.T) {
	conn := &fakeConn{}
	dev := New(conn)
	require.NoError(t, dev.EraseChip())
	require.Len(t, conn.frames, 2)
	assert.Equal(t, []byte{0x06}, conn.frames[0])
	assert.Equal(t, []byte{0xC7}, conn.frames[1])
}

func TestDevice_WaitReady(t *testing.T) {
	conn := &fakeConn{resps: [][]byte{{0x01}, {0x01}, {0x00}}}
	dev := New(conn)
	dev.poll = time.Microsecond
	require.NoError(t, dev.WaitReady(context.Background()))
	assert.Len(t, conn.frames, 3)
}

func TestDevice_WaitReady_ContextExpires(t *testing.T) {
	conn := &fakeConn{resps: [][]byte{{0x01}}}
	dev := New(conn)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := dev.WaitReady(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
