/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pcbridge/pcbridge/pkg/logging"
)

const (
	name           = "pcbridge"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags.
var (
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "output format (json, yaml, table)",
		Value: "json",
	}

	tempsFlag = &cli.BoolFlag{
		Name:    "temps",
		Aliases: []string{"t"},
		Usage:   "enable temperature, power, and frequency sampling",
		Sources: cli.EnvVars("PCBRIDGE_TEMPS"),
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Bridge host hardware telemetry to an external display device",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars(logging.LevelEnvVar),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCmd(),
			snapshotCmd(),
			printCmd(),
		},
	}
}

// Execute runs the CLI with graceful SIGINT/SIGTERM shutdown.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
