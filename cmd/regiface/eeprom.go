package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BroderickCarlin/regiface/cmd/regiface/console"
	"github.com/BroderickCarlin/regiface/devices/eeprom25aa"
	"github.com/BroderickCarlin/regiface/periphbus"
)

var spiFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "port",
		Usage: "spi port name, empty picks the first one",
	},
	&cli.IntFlag{
		Name:  "mhz",
		Value: 5,
		Usage: "clock frequency in MHz",
	},
}

func openEEPROM(c *cli.Context) (*eeprom25aa.Device, *periphbus.SPIConn, error) {
	conn, err := periphbus.OpenSPI(c.String("port"), physic.Frequency(c.Int("mhz"))*physic.MegaHertz, spi.Mode0)
	if err != nil {
		return nil, nil, err
	}
	return eeprom25aa.New(conn), conn, nil
}

var eepromCmd = cli.Command{
	Name:  "eeprom",
	Usage: "25AA1024 EEPROM control surface",
	Subcommands: cli.Commands{
		&eepromStatusCmd,
		&eepromProtectCmd,
		&eepromEraseCmd,
	},
}

var eepromStatusCmd = cli.Command{
	Name:  "status",
	Flags: spiFlags,
	Action: func(c *cli.Context) error {
		dev, conn, err := openEEPROM(c)
		if err != nil {
			return console.Exit(1, "spi initialization error: %s", console.Red(err))
		}
		defer conn.Close()
		status, err := dev.Status()
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(status); err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var eepromProtectCmd = cli.Command{
	Name: "protect",
	Flags: append([]cli.Flag{
		&cli.UintFlag{Name: "level", Required: true, Usage: "block protection level (0-3)"},
	}, spiFlags...),
	Action: func(c *cli.Context) error {
		dev, conn, err := openEEPROM(c)
		if err != nil {
			return console.Exit(1, "spi initialization error: %s", console.Red(err))
		}
		defer conn.Close()
		if err := dev.EnableWrite(); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := dev.SetBlockProtection(byte(c.Uint("level"))); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.Printf("%s\n", console.Green("OK"))
		return nil
	},
}

var eepromEraseCmd = cli.Command{
	Name: "erase",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "yes", Usage: "skip confirmation"},
	}, spiFlags...),
	Action: func(c *cli.Context) error {
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("erase the entire chip?")
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				return nil
			}
		}
		dev, conn, err := openEEPROM(c)
		if err != nil {
			return console.Exit(1, "spi initialization error: %s", console.Red(err))
		}
		defer conn.Close()
		if err := dev.EraseChip(); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := dev.WaitReady(cliContext(c)); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.Printf("%s\n", console.Green("OK"))
		return nil
	},
}
