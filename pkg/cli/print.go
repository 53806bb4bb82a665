/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pcbridge/pcbridge/pkg/snapshotter"
	"github.com/pcbridge/pcbridge/pkg/status"
)

func printCmd() *cli.Command {
	return &cli.Command{
		Name:                  "print",
		EnableShellCompletion: true,
		Usage:                 "Sample once and print a human-readable summary",
		Description: `Run a single sampling cycle and print the readings to the console.

Delta-based readings (CPU load, network throughput, power) need two
samples, so a baseline cycle runs first.`,
		Flags: []cli.Flag{
			tempsFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			snapper := snapshotter.New(nil, cmd.Bool("temps"))
			snapper.Warm(ctx)

			snap, err := snapper.Snapshot(ctx)
			if err != nil {
				return err
			}
			printSnapshot(os.Stdout, snap)
			return nil
		},
	}
}

// printSnapshot writes the console view of one snapshot. Absent readings
// (zeros) are omitted the way a dashboard would hide a dead gauge.
func printSnapshot(w io.Writer, s *status.Snapshot) {
	fmt.Fprintf(w, "CPU:     %.1f%%", float64(s.CPU.Load))
	if s.CPU.Temp > 0 {
		fmt.Fprintf(w, "  Temp: %.1f°C", float64(s.CPU.Temp))
	}
	if s.CPU.Consume > 0 {
		fmt.Fprintf(w, "  Power: %.1fW", float64(s.CPU.Consume))
	}
	fmt.Fprintln(w)

	if s.GPU.Temp > 0 || s.GPU.Load > 0 || s.GPU.Consume > 0 {
		fmt.Fprintf(w, "GPU:     %.1f%%", float64(s.GPU.Load))
		if s.GPU.Temp > 0 {
			fmt.Fprintf(w, "  Temp: %.1f°C", float64(s.GPU.Temp))
		}
		if s.GPU.Consume > 0 {
			fmt.Fprintf(w, "  Power: %.1fW", float64(s.GPU.Consume))
		}
		if s.GPU.Freq > 0 {
			fmt.Fprintf(w, "  Freq: %.0f MHz", float64(s.GPU.Freq))
		}
		if s.GPU.RPM > 0 {
			fmt.Fprintf(w, "  Fan: %.0f RPM", float64(s.GPU.RPM))
		}
		fmt.Fprintln(w)
	}

	if s.Board.Temp > 0 || s.Board.RPM > 0 {
		fmt.Fprint(w, "Board:  ")
		if s.Board.Temp > 0 {
			fmt.Fprintf(w, " Temp: %.1f°C", float64(s.Board.Temp))
		}
		if s.Board.RPM > 0 {
			fmt.Fprintf(w, "  Fan: %.0f RPM", float64(s.Board.RPM))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Memory:  %.1f GB used / %.1f GB free (%.1f%%)\n",
		float64(s.Memory.Used), float64(s.Memory.Avail), float64(s.Memory.Percent))
	fmt.Fprintf(w, "Disk:    %.1f%% used\n", float64(s.Storage.Percent))
	fmt.Fprintf(w, "Network: ↑ %.1f Mb/s  ↓ %.1f Mb/s\n",
		float64(s.Network.Up), float64(s.Network.Down))
	fmt.Fprintf(w, "Uptime:  %ds\n", s.Board.Tick)
}
