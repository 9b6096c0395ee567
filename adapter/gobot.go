package adapter

import (
	"fmt"

	"gobot.io/x/gobot/v2/drivers/spi"

	rifspi "github.com/BroderickCarlin/regiface/spi"
)

var _ rifspi.Conn = &GobotSPI{}

// GobotSPI adapts a Gobot SPI connection to the chip-select serial contract,
// so regiface register types can be used from Gobot robot definitions. The
// write-then-read shape maps directly onto Gobot's command/data split.
type GobotSPI struct {
	conn spi.Connection
}

func NewGobotSPI(conn spi.Connection) *GobotSPI {
	return &GobotSPI{conn: conn}
}

func (g *GobotSPI) Tx(w, r []byte) error {
	// Not every Gobot platform connection implements the full operation set.
	type spiOps interface {
		ReadCommandData(command []byte, data []byte) error
		WriteBytes(data []byte) error
	}
	ops, ok := g.conn.(spiOps)
	if !ok {
		return fmt.Errorf("spi connection does not support required operations")
	}
	if len(r) == 0 {
		if len(w) == 0 {
			return nil
		}
		return ops.WriteBytes(w)
	}
	return ops.ReadCommandData(w, r)
}
