// Package periphbus backs the regiface bus contracts with periph.io host
// drivers, for running against real /dev/i2c-* and /dev/spidev* devices.
package periphbus

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	rifi2c "github.com/BroderickCarlin/regiface/i2c"
	rifspi "github.com/BroderickCarlin/regiface/spi"
)

var _ rifi2c.Bus = &I2CBus{}
var _ rifi2c.ContextBus = &I2CBus{}
var _ rifspi.Conn = &SPIConn{}
var _ rifspi.ContextConn = &SPIConn{}

// I2CBus is an addressed bus backed by a periph.io I2C host driver.
type I2CBus struct {
	bus i2c.BusCloser
}

// OpenI2C initializes the periph host and opens the named I2C bus. An empty
// name selects the first available bus.
func OpenI2C(name string) (*I2CBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	return &I2CBus{bus: bus}, nil
}

func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	err := b.bus.Tx(addr, w, r)
	if err != nil {
		return fmt.Errorf("i2c transaction with %#x failed: %w", addr, err)
	}
	return nil
}

// TxContext checks the context before touching the bus; periph transfers
// themselves are not interruptible.
func (b *I2CBus) TxContext(ctx context.Context, addr uint16, w, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.Tx(addr, w, r)
}

func (b *I2CBus) Close() error {
	return b.bus.Close()
}

// SPIConn is a chip-select serial connection backed by a periph.io SPI host
// driver. The write-then-read contract is emulated over periph's full-duplex
// Tx with a padded scratch buffer.
type SPIConn struct {
	port spi.PortCloser
	conn spi.Conn
}

// OpenSPI initializes the periph host and connects to the named SPI port at
// the given frequency and mode.
func OpenSPI(name string, freq physic.Frequency, mode spi.Mode) (*SPIConn, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open spi port: %w", err)
	}
	conn, err := port.Connect(freq, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("could not connect to spi port: %w", err)
	}
	return &SPIConn{port: port, conn: conn}, nil
}

func (c *SPIConn) Tx(w, r []byte) error {
	if len(r) == 0 {
		if err := c.conn.Tx(w, nil); err != nil {
			return fmt.Errorf("spi write failed: %w", err)
		}
		return nil
	}
	tx := make([]byte, len(w)+len(r))
	rx := make([]byte, len(w)+len(r))
	copy(tx, w)
	if err := c.conn.Tx(tx, rx); err != nil {
		return fmt.Errorf("spi transaction failed: %w", err)
	}
	copy(r, rx[len(w):])
	return nil
}

// TxContext checks the context before touching the bus; periph transfers
// themselves are not interruptible.
func (c *SPIConn) TxContext(ctx context.Context, w, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Tx(w, r)
}

func (c *SPIConn) Close() error {
	return c.port.Close()
}
