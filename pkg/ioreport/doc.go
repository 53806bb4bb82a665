/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package ioreport derives package power, graphics frequency, and graphics
// load from the platform's cumulative performance counters.
//
// The counters are monotonic, so a single sample carries no rate
// information. The Sampler keeps the previous sample and computes each
// cycle's metrics from the delta between two successive samples. The first
// sample after startup only establishes a baseline.
package ioreport
