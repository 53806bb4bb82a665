/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the pcbridge command tree: run (continuous
// sampling to the display device), snapshot (one-shot serialized
// capture), and print (one-shot console view).
package cli
