/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/pcbridge/pcbridge/pkg/serializer"
	"github.com/pcbridge/pcbridge/pkg/snapshotter"
	"github.com/pcbridge/pcbridge/pkg/status"
)

// envelope wraps a one-shot snapshot with capture metadata for
// diagnostic output.
type envelope struct {
	ID       string           `json:"id" yaml:"id"`
	Version  string           `json:"version" yaml:"version"`
	Captured time.Time        `json:"captured" yaml:"captured"`
	Status   *status.Snapshot `json:"status" yaml:"status"`
}

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture one telemetry snapshot",
		Description: `Run a single sampling cycle and serialize the snapshot.

The snapshot can be output in JSON, YAML, or table format, to stdout or
to a file.

# Examples

Full snapshot including temperatures:
  pcbridge snapshot --temps

YAML to a file:
  pcbridge snapshot --temps --format yaml --output snapshot.yaml`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			tempsFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			snapper := snapshotter.New(nil, cmd.Bool("temps"))
			snapper.Warm(ctx)

			snap, err := snapper.Snapshot(ctx)
			if err != nil {
				return fmt.Errorf("snapshot failed: %w", err)
			}

			env := &envelope{
				ID:       uuid.NewString(),
				Version:  version,
				Captured: time.Now().UTC(),
				Status:   snap,
			}

			out := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if closer, ok := out.(serializer.Closer); ok {
				defer closer.Close()
			}
			return out.Serialize(ctx, env)
		},
	}
}
