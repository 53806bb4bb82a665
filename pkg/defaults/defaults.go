/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Sampling defaults.
const (
	// SampleInterval is the default pause between sampling cycles.
	SampleInterval = 2 * time.Second

	// CycleTimeout bounds one full sampling cycle. Collectors should
	// respect parent context deadlines when shorter.
	CycleTimeout = 10 * time.Second
)

// Serial line defaults for the display device.
const (
	// SerialBaud is the default baud rate.
	SerialBaud = 115200
)

// Metrics server timeouts for daemon mode.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 10 * time.Second
)
