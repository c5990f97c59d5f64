package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/slate/internal/hw"
)

func capsCmd() *cli.Command {
	return &cli.Command{
		Name:      "caps",
		Usage:     "Show the built-in hardware capability presets",
		ArgsUsage: "[preset]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var v any
			if name := cmd.Args().First(); name != "" {
				caps, err := hw.Preset(name)
				if err != nil {
					return err
				}
				v = caps
			} else {
				v = hw.Presets()
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(out))
			return err
		},
	}
}
