package main

import (
	"github.com/urfave/cli/v2"

	"github.com/BroderickCarlin/regiface/cmd/regiface/console"
	"github.com/BroderickCarlin/regiface/devices/tc74"
)

var tc74Cmd = cli.Command{
	Name:    "tc74",
	Usage:   "read temperature from a TC74 sensor",
	Aliases: []string{"temp"},
	Flags: append([]cli.Flag{
		&cli.UintFlag{Name: "address", Value: tc74.DefaultAddress, Usage: "7-bit sensor address"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		bus, closer, err := openBus(c)
		if err != nil {
			return console.Exit(1, "bus initialization error: %s", console.Red(err))
		}
		if closer != nil {
			defer closer.Close()
		}
		sensor := tc74.New(bus, tc74.WithAddress(uint16(c.Uint("address"))))
		temp, err := sensor.GetTemperature(cliContext(c))
		if err != nil {
			return console.Exit(1, "error getting temperature read: %s", console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoThermometer, console.White(temp))
		return nil
	},
}
