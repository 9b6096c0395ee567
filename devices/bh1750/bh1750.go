// Package bh1750 models the ROHM BH1750 ambient light sensor as typed
// regiface commands. The device is command-only: it has no addressable
// register file, every interaction is an opcode optionally followed by a
// measurement readout.
package bh1750

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/BroderickCarlin/regiface"
	"github.com/BroderickCarlin/regiface/i2c"
)

// The ADDR pin selects between two 7-bit bus addresses.
const AddrHigh = 0b1011100
const AddrLow = 0b0100011

// PowerDown puts the device in its inactive state (opcode 0b0000_0000).
type PowerDown struct{}

func (PowerDown) CommandID() regiface.ID { return regiface.ID8(0b00000000) }

func (PowerDown) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

// MeasureOnce triggers a single low-resolution measurement (opcode
// 0b0010_0011) and is answered by a two-byte raw lux count once the
// conversion finishes.
type MeasureOnce struct{}

func (MeasureOnce) CommandID() regiface.ID { return regiface.ID8(0b00100011) }

func (MeasureOnce) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

// Reading is the two-byte big-endian raw measurement.
type Reading struct {
	Raw uint16
}

func (Reading) WireSize() int { return 2 }

func (r *Reading) DecodeBytes(buf []byte) error {
	r.Raw = binary.BigEndian.Uint16(buf)
	return nil
}

// Lux converts the raw count per the datasheet scale factor.
func (r Reading) Lux() int {
	return int(float32(r.Raw) / 1.2)
}

// Sensor is a BH1750 connector on a suspending addressed bus.
type Sensor struct {
	bus  i2c.ContextBus
	addr uint16
	wait time.Duration
}

func New(bus i2c.ContextBus, addr uint16) *Sensor {
	return &Sensor{
		bus:  bus,
		addr: addr,
		// measurement cycle takes typically 16ms, max time is 24ms in low
		// resolution and 180ms in high resolution
		wait: 25 * time.Millisecond,
	}
}

// GetLux triggers a single low-resolution measurement and returns the
// converted value.
func (s *Sensor) GetLux(ctx context.Context) (int, error) {
	reading, err := i2c.InvokeCommandContext[Reading](ctx, &delayedBus{s.bus, s.wait}, s.addr, MeasureOnce{})
	if err != nil {
		return 0, fmt.Errorf("bh1750: measurement failed: %w", err)
	}
	return reading.Lux(), nil
}

// delayedBus splits the command invocation into its write and read phases
// with the conversion wait in between; the device NACKs reads that arrive
// before the measurement completes.
type delayedBus struct {
	bus  i2c.ContextBus
	wait time.Duration
}

func (d *delayedBus) TxContext(ctx context.Context, addr uint16, w, r []byte) error {
	if len(w) > 0 {
		if err := d.bus.TxContext(ctx, addr, w, nil); err != nil {
			return err
		}
	}
	if len(r) == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.wait):
	}
	return d.bus.TxContext(ctx, addr, nil, r)
}
