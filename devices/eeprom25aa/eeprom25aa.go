// Package eeprom25aa models the control surface of the Microchip 25AA1024
// SPI EEPROM as typed regiface registers and commands.
//
// Datasheet reference: Microchip 25AA1024 Serial EEPROM (Table 3-1
// Instruction Set). The status register is read through RDSR (0x05) and
// written through WRSR (0x01); the write latch and erase instructions carry
// no payload in either direction.
package eeprom25aa

import (
	"context"
	"fmt"
	"time"

	"github.com/BroderickCarlin/regiface"
	"github.com/BroderickCarlin/regiface/spi"
)

// Status is the device STATUS register. It demonstrates split read/write
// identifiers: reads go out as the RDSR opcode, writes as WRSR.
type Status struct {
	WriteInProgress bool
	WriteEnabled    bool
	BlockProtection byte
}

func (Status) RegisterID() regiface.ID      { return regiface.ID8(0x05) }
func (Status) WriteRegisterID() regiface.ID { return regiface.ID8(0x01) }
func (Status) WireSize() int                { return 1 }

func (s *Status) DecodeBytes(buf []byte) error {
	s.WriteInProgress = buf[0]&0x01 != 0
	s.WriteEnabled = buf[0]&0x02 != 0
	s.BlockProtection = (buf[0] >> 2) & 0x03
	return nil
}

// EncodeBytes serializes the writable bits only; WIP and WEL are read-only
// on the device.
func (s Status) EncodeBytes() ([]byte, error) {
	return []byte{(s.BlockProtection & 0x03) << 2}, nil
}

// WriteEnable sets the write-enable latch (WREN).
type WriteEnable struct{}

func (WriteEnable) CommandID() regiface.ID { return regiface.ID8(0x06) }

func (WriteEnable) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

// WriteDisable clears the write-enable latch (WRDI).
type WriteDisable struct{}

func (WriteDisable) CommandID() regiface.ID { return regiface.ID8(0x04) }

func (WriteDisable) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

// ChipErase erases the entire array (CE). The write-enable latch must be set
// first.
type ChipErase struct{}

func (ChipErase) CommandID() regiface.ID { return regiface.ID8(0xC7) }

func (ChipErase) InvokingParameters() regiface.Encodable {
	return regiface.NoParameters{}
}

// Device drives the EEPROM's control instructions over a chip-select serial
// connection. Page reads and writes are out of scope here; this package
// covers the status/latch/erase surface.
type Device struct {
	conn spi.Conn
	poll time.Duration
}

func New(conn spi.Conn) *Device {
	return &Device{conn: conn, poll: time.Millisecond}
}

func (d *Device) Status() (Status, error) {
	status, err := spi.ReadRegister[Status](d.conn)
	if err != nil {
		return Status{}, fmt.Errorf("eeprom25aa: could not read status: %w", err)
	}
	return status, nil
}

func (d *Device) SetBlockProtection(level byte) error {
	if level > 3 {
		return fmt.Errorf("eeprom25aa: invalid block protection level %d", level)
	}
	if err := spi.WriteRegister(d.conn, Status{BlockProtection: level}); err != nil {
		return fmt.Errorf("eeprom25aa: could not write status: %w", err)
	}
	return nil
}

func (d *Device) EnableWrite() error {
	_, err := spi.InvokeCommand[regiface.NoParameters](d.conn, WriteEnable{})
	if err != nil {
		return fmt.Errorf("eeprom25aa: write enable failed: %w", err)
	}
	return nil
}

func (d *Device) DisableWrite() error {
	_, err := spi.InvokeCommand[regiface.NoParameters](d.conn, WriteDisable{})
	if err != nil {
		return fmt.Errorf("eeprom25aa: write disable failed: %w", err)
	}
	return nil
}

// EraseChip sets the write latch and issues a chip erase. Use WaitReady to
// block until the device finishes the internal erase cycle.
func (d *Device) EraseChip() error {
	if err := d.EnableWrite(); err != nil {
		return err
	}
	_, err := spi.InvokeCommand[regiface.NoParameters](d.conn, ChipErase{})
	if err != nil {
		return fmt.Errorf("eeprom25aa: chip erase failed: %w", err)
	}
	return nil
}

// WaitReady polls the status register until the write-in-progress bit
// clears or the context expires.
func (d *Device) WaitReady(ctx context.Context) error {
	for {
		status, err := d.Status()
		if err != nil {
			return err
		}
		if !status.WriteInProgress {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.poll):
		}
	}
}
