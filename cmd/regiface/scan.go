package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/BroderickCarlin/regiface/cmd/regiface/console"
)

var scanCmd = cli.Command{
	Name:  "scan",
	Usage: "probe the addressed bus for responding devices",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		bus, closer, err := openBus(c)
		if err != nil {
			return console.Exit(1, "bus initialization error: %s", console.Red(err))
		}
		if closer != nil {
			defer closer.Close()
		}
		ctx := cliContext(c)
		found := 0
		buf := make([]byte, 1)
		// 0x00-0x07 and 0x78-0x7F are reserved
		for addr := uint16(0x08); addr <= 0x77; addr++ {
			if err := bus.TxContext(ctx, addr, nil, buf); err != nil {
				continue
			}
			console.Printf("%s device at %s\n", console.Green("✓"), console.Bold(fmt.Sprintf("%#x", addr)))
			found++
		}
		if found == 0 {
			console.Warnf("no devices found")
		}
		return nil
	},
}
