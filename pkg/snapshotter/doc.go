/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package snapshotter orchestrates one sampling cycle: it runs the host,
// thermal, and power collectors in sequence and assembles a complete
// snapshot for framing or display.
package snapshotter
