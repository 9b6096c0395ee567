// Package tc74 models the Microchip TC74 digital temperature sensor as
// typed regiface registers.
// See: https://ww1.microchip.com/downloads/en/DeviceDoc/21462D.pdf
package tc74

import (
	"context"
	"fmt"

	"github.com/BroderickCarlin/regiface"
	"github.com/BroderickCarlin/regiface/i2c"
)

// DefaultAddress is the factory-programmed 7-bit bus address (TC74A5).
const DefaultAddress = 0x4D

// Temperature is the read-only temperature register (RTR, 0x00). The device
// reports whole degrees Celsius as an 8-bit two's complement value.
type Temperature struct {
	Celsius float32
}

func (Temperature) RegisterID() regiface.ID { return regiface.ID8(0x00) }
func (Temperature) WireSize() int           { return 1 }

func (t *Temperature) DecodeBytes(buf []byte) error {
	t.Celsius = float32(int8(buf[0]))
	return nil
}

// Config is the configuration register (RWCR, 0x01). DataReady is read-only
// on the device and is not encoded back.
type Config struct {
	Standby   bool
	DataReady bool
}

func (Config) RegisterID() regiface.ID { return regiface.ID8(0x01) }
func (Config) WireSize() int           { return 1 }

func (c *Config) DecodeBytes(buf []byte) error {
	c.Standby = buf[0]&0x80 != 0
	c.DataReady = buf[0]&0x40 != 0
	return nil
}

func (c Config) EncodeBytes() ([]byte, error) {
	var b byte
	if c.Standby {
		b |= 0x80
	}
	return []byte{b}, nil
}

type SensorConfig struct {
	Address uint16
}

type SensorOption func(*SensorConfig)

func WithAddress(address uint16) SensorOption {
	return func(c *SensorConfig) {
		c.Address = address
	}
}

// Sensor is a TC74 connector on a suspending addressed bus.
//
// Usage: instantiate with New, then call GetTemperature(ctx).
type Sensor struct {
	bus      i2c.ContextBus
	address  uint16
	lastTemp float32
}

// New creates a TC74 connector with the given bus transport and optional
// address. The default address is 0x4D.
func New(bus i2c.ContextBus, opts ...SensorOption) *Sensor {
	config := &SensorConfig{
		Address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Sensor{bus: bus, address: config.Address}
}

// GetConfig reads the configuration register.
func (s *Sensor) GetConfig(ctx context.Context) (Config, error) {
	config, err := i2c.ReadRegisterContext[Config](ctx, s.bus, s.address)
	if err != nil {
		return Config{}, fmt.Errorf("tc74: could not read config register: %w", err)
	}
	return config, nil
}

// SetStandby moves the sensor in or out of standby mode.
func (s *Sensor) SetStandby(ctx context.Context, standby bool) error {
	err := i2c.WriteRegisterContext(ctx, s.bus, s.address, Config{Standby: standby})
	if err != nil {
		return fmt.Errorf("tc74: could not write config register: %w", err)
	}
	return nil
}

// GetTemperature reads the current temperature in Celsius. It checks the
// DATA_RDY bit in the config register first; while a conversion is still
// pending it returns the last known value.
func (s *Sensor) GetTemperature(ctx context.Context) (float32, error) {
	config, err := s.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	if !config.DataReady {
		return s.lastTemp, nil
	}
	temp, err := i2c.ReadRegisterContext[Temperature](ctx, s.bus, s.address)
	if err != nil {
		return 0, fmt.Errorf("tc74: could not read temp register: %w", err)
	}
	s.lastTemp = temp.Celsius
	return s.lastTemp, nil
}
