package tc74

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBus answers register reads from a canned register file and records
// writes back into it.
type fakeBus struct {
	regs map[byte][]byte
	txs  [][]byte
}

func (b *fakeBus) TxContext(_ context.Context, _ uint16, w, r []byte) error {
	b.txs = append(b.txs, append([]byte(nil), w...))
	if len(r) == 0 {
		b.regs[w[0]] = append([]byte(nil), w[1:]...)
		return nil
	}
	copy(r, b.regs[w[0]])
	return nil
}

func TestTemperature_Decode(t *testing.T) {
	tests := []struct {
		given    byte
		expected float32
	}{
		{0x00, 0.0},
		{0x19, 25.0},
		{0x7F, 127.0},
		{0xFF, -1.0},
		{0xC9, -55.0},
	}
	for _, test := range tests {
		t.Run(hex.EncodeToString([]byte{test.given}), func(t *testing.T) {
			var temp Temperature
			require.NoError(t, temp.DecodeBytes([]byte{test.given}))
			assert.Equal(t, test.expected, temp.Celsius)
		})
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	given := Config{Standby: true}
	buf, err := given.EncodeBytes()
	require.NoError(t, err)
	require.Len(t, buf, given.WireSize())
	var decoded Config
	require.NoError(t, decoded.DecodeBytes(buf))
	assert.Equal(t, given, decoded)
}

func TestSensor_GetTemperature(t *testing.T) {
	bus := &fakeBus{regs: map[byte][]byte{
		0x00: {0x19},
		0x01: {0x40}, // DATA_RDY set
	}}
	sensor := New(bus)
	temp, err := sensor.GetTemperature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(25.0), temp)
	// config poll then temperature read
	require.Len(t, bus.txs, 2)
	assert.Equal(t, []byte{0x01}, bus.txs[0])
	assert.Equal(t, []byte{0x00}, bus.txs[1])
}

func TestSensor_GetTemperature_NotReady(t *testing.T) {
	bus := &fakeBus{regs: map[byte][]byte{
		0x00: {0x19},
		0x01: {0x00},
	}}
	sensor := New(bus, WithAddress(0x48))
	temp, err := sensor.GetTemperature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(0), temp)
	require.Len(t, bus.txs, 1)
}

func TestSensor_SetStandby(t *testing.T) {
	bus := &fakeBus{regs: map[byte][]byte{}}
	sensor := New(bus)
	require.NoError(t, sensor.SetStandby(context.Background(), true))
	require.Len(t, bus.txs, 1)
	assert.Equal(t, []byte{0x01, 0x80}, bus.txs[0])
}
