package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/slate/internal/opdesc"
	"github.com/samcharles93/slate/internal/sram"
	"github.com/samcharles93/slate/internal/strategy"
)

var errNoFit = errors.New("no legal configuration fits the scratch memory budget")

// sramSizeBytes converts the --sram-size flag, rejecting values the 32-bit
// budget field cannot represent.
func sramSizeBytes(v int64) (uint32, error) {
	if v <= 0 || v > math.MaxUint32 {
		return 0, fmt.Errorf("sram-size %d is out of range (1 to %d)", v, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

func planCmd() *cli.Command {
	var (
		capsName string
		capsFile string
		sramSize int64
	)

	return &cli.Command{
		Name:      "plan",
		Usage:     "Run the tiling search for an operator description",
		ArgsUsage: "<operator.yaml>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "caps",
				Usage:       "capability preset name",
				Destination: &capsName,
			},
			&cli.StringFlag{
				Name:        "caps-file",
				Usage:       "capability descriptor yaml file",
				Destination: &capsFile,
			},
			&cli.Int64Flag{
				Name:        "sram-size",
				Usage:       "override the SRAM budget in bytes",
				Destination: &sramSize,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one operator description file")
			}

			spec, err := opdesc.Load(cmd.Args().First())
			if err != nil {
				return err
			}
			// Flags override the description file, which overrides the
			// config file defaults.
			cfgFile := LoadConfig()
			applyPlanConfig(cmd, cfgFile, &capsName, &capsFile, &sramSize)
			if capsName != "" {
				spec.Caps = capsName
			}
			if capsFile != "" {
				spec.CapsFile = capsFile
			}
			if sramSize != 0 {
				size, err := sramSizeBytes(sramSize)
				if err != nil {
					return err
				}
				spec.SramSizeBytes = size
			}

			op, err := spec.Resolve()
			if err != nil {
				return err
			}

			alloc := sram.New(op.Caps.SramSizeBytes)
			var cfg strategy.TensorConfig
			if !strategy.TryStrategyX(op, &cfg, &alloc) {
				return errNoFit
			}

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(out))
			return err
		},
	}
}
