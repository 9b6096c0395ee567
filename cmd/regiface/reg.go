package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/BroderickCarlin/regiface/adapter"
	"github.com/BroderickCarlin/regiface/clictx"
	"github.com/BroderickCarlin/regiface/cmd/regiface/console"
	"github.com/BroderickCarlin/regiface/i2c"
	"github.com/BroderickCarlin/regiface/periphbus"
)

var busFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "adapter",
		Usage: "bus adapter (periph or mcp2221)",
		Value: "periph",
	},
	&cli.StringFlag{
		Name:  "bus",
		Usage: "i2c bus name for the periph adapter, empty picks the first one",
	},
}

// openBus selects the addressed-bus transport from the adapter flag.
func openBus(c *cli.Context) (i2c.ContextBus, io.Closer, error) {
	switch c.String("adapter") {
	case "mcp2221":
		return adapter.NewMCP2221(), nil, nil
	case "periph":
		bus, err := periphbus.OpenI2C(c.String("bus"))
		if err != nil {
			return nil, nil, err
		}
		return bus, bus, nil
	default:
		return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}

func cliContext(c *cli.Context) context.Context {
	return clictx.SetVerbose(context.Background(), c.Bool("verbose"))
}

var regCmd = cli.Command{
	Name:  "reg",
	Usage: "raw register access through a device map",
	Subcommands: cli.Commands{
		&regReadCmd,
		&regWriteCmd,
	},
}

var regReadCmd = cli.Command{
	Name: "read",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "map", Value: "regmap.yaml", Usage: "register map file"},
		&cli.StringFlag{Name: "name", Required: true, Usage: "register name from the map"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		m, err := LoadRegisterMap(c.String("map"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		reg, ok := m.Find(c.String("name"))
		if !ok {
			return console.Exit(1, "no register %s in %s", console.Bold(c.String("name")), c.String("map"))
		}
		id, err := reg.IDBytes()
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		bus, closer, err := openBus(c)
		if err != nil {
			return console.Exit(1, "bus initialization error: %s", console.Red(err))
		}
		if closer != nil {
			defer closer.Close()
		}
		buf := make([]byte, reg.Width)
		if err := bus.TxContext(cliContext(c), reg.Device, id, buf); err != nil {
			return console.Exit(1, "read failed: %s", console.Red(err))
		}
		console.Printf("%s %s = %s\n", console.PictoPin, console.Bold(reg.Name), console.White(hex.EncodeToString(buf)))
		return nil
	},
}

var regWriteCmd = cli.Command{
	Name: "write",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "map", Value: "regmap.yaml", Usage: "register map file"},
		&cli.StringFlag{Name: "name", Required: true, Usage: "register name from the map"},
		&cli.StringFlag{Name: "value", Required: true, Usage: "payload as hex, e.g. 41c80000"},
		&cli.BoolFlag{Name: "yes", Usage: "skip confirmation"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		m, err := LoadRegisterMap(c.String("map"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		reg, ok := m.Find(c.String("name"))
		if !ok {
			return console.Exit(1, "no register %s in %s", console.Bold(c.String("name")), c.String("map"))
		}
		if !reg.Writable {
			return console.Exit(1, "%s register %s is not writable", console.PictoStop, console.Bold(reg.Name))
		}
		payload, err := hex.DecodeString(c.String("value"))
		if err != nil {
			return console.Exit(1, "invalid value: %s", console.Red(err))
		}
		if len(payload) != reg.Width {
			return console.Exit(1, "value is %d bytes, register %s is %d bytes wide", len(payload), console.Bold(reg.Name), reg.Width)
		}
		if !c.Bool("yes") {
			answer, err := console.YesOrNo(fmt.Sprintf("write %s to %s on device %#x?", c.String("value"), reg.Name, reg.Device))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				return nil
			}
		}
		id, err := reg.IDBytes()
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		bus, closer, err := openBus(c)
		if err != nil {
			return console.Exit(1, "bus initialization error: %s", console.Red(err))
		}
		if closer != nil {
			defer closer.Close()
		}
		frame := append(append([]byte{}, id...), payload...)
		if err := bus.TxContext(cliContext(c), reg.Device, frame, nil); err != nil {
			return console.Exit(1, "write failed: %s", console.Red(err))
		}
		console.Printf("%s\n", console.Green("OK"))
		return nil
	},
}
