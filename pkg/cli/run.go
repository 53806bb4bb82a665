/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pcbridge/pcbridge/pkg/api"
	"github.com/pcbridge/pcbridge/pkg/defaults"
	"github.com/pcbridge/pcbridge/pkg/snapshotter"
	"github.com/pcbridge/pcbridge/pkg/transport"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Sample continuously and stream snapshots to the display device",
		Description: `Run the sampling loop: collect host, thermal, and power readings each
cycle, assemble a snapshot, and write it as a framed message to the
display's serial port.

Without --port the loop still runs, which is useful together with
--verbose or --metrics-addr to observe readings locally.

# Examples

Stream to a display at the default baud rate:
  pcbridge run --port /dev/tty.usbserial-110 --temps

Local dry run with console output and metrics:
  pcbridge run --verbose --metrics-addr :9090`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "serial port of the display device (empty: do not send)",
				Sources: cli.EnvVars("PCBRIDGE_PORT"),
			},
			&cli.IntFlag{
				Name:    "baud",
				Usage:   "serial baud rate",
				Value:   defaults.SerialBaud,
				Sources: cli.EnvVars("PCBRIDGE_BAUD"),
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "pause between sampling cycles",
				Value:   defaults.SampleInterval,
				Sources: cli.EnvVars("PCBRIDGE_INTERVAL"),
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "listen address for health/metrics endpoints (empty: disabled)",
				Sources: cli.EnvVars("PCBRIDGE_METRICS_ADDR"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print each snapshot to the console",
			},
			tempsFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			interval := cmd.Duration("interval")
			if interval <= 0 {
				return fmt.Errorf("invalid interval: %s", interval)
			}

			snapper := snapshotter.New(nil, cmd.Bool("temps"))

			var sender *transport.Sender
			var line io.Closer
			if port := cmd.String("port"); port != "" {
				stream, err := transport.OpenSerial(port, int(cmd.Int("baud")))
				if err != nil {
					return err
				}
				line = stream
				sender = transport.NewSender(stream)
				slog.Info("serial line open", "port", port, "baud", cmd.Int("baud"))
			}
			if line != nil {
				defer line.Close()
			}

			// Baselines for the tick-delta collectors.
			warmCtx, cancel := context.WithTimeout(ctx, defaults.CycleTimeout)
			snapper.Warm(warmCtx)
			cancel()

			g, gctx := errgroup.WithContext(ctx)

			var srv *api.Server
			if addr := cmd.String("metrics-addr"); addr != "" {
				srv = api.New(addr, version)
				g.Go(func() error {
					return srv.Start(gctx)
				})
			}

			g.Go(func() error {
				err := sampleLoop(gctx, snapper, sender, interval, cmd.Bool("verbose"), srv)
				if srv != nil {
					// Loop exit also stops the metrics server.
					_ = srv.Shutdown(context.Background())
				}
				return err
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			slog.Info("sampling stopped")
			return nil
		},
	}
}

// sampleLoop runs cycles until the context is canceled. Send failures are
// logged and the cycle's frame discarded; the loop itself keeps going.
func sampleLoop(ctx context.Context, snapper snapshotter.Snapshotter, sender *transport.Sender,
	interval time.Duration, verbose bool, srv *api.Server) error {

	limiter := rate.NewLimiter(rate.Every(interval), 1)

	notified := false
	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		cycleCtx, cancel := context.WithTimeout(ctx, defaults.CycleTimeout)
		snap, err := snapper.Snapshot(cycleCtx)
		cancel()
		if err != nil {
			return err
		}

		if !notified {
			// First full cycle done: the service is live.
			if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
				slog.Debug("systemd notify failed", "error", err.Error())
			}
			if srv != nil {
				srv.SetReady(true)
			}
			notified = true
		}

		if sender != nil {
			if err := sender.Send(snap); err != nil {
				slog.Error("send failed", "error", err.Error())
			}
		}

		if verbose {
			printSnapshot(os.Stdout, snap)
		}
	}
}
