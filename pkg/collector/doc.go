/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package collector defines the interface for snapshot section collectors
// and the factory that wires production implementations together.
//
// Each collector fills one section of a status.Snapshot:
//
//	type Collector interface {
//	    Collect(ctx context.Context, snap *status.Snapshot) error
//	}
//
// Collectors that derive rates (CPU ticks, network byte counters) keep
// their own previous-value state between calls; the first call after
// startup establishes a baseline and reports zero.
//
// The Factory interface abstracts collector construction so tests can
// substitute fakes:
//
//	factory := collector.NewDefaultFactory()
//	host := factory.CreateHostCollector()
//
// Collection failures are soft: a collector that cannot reach its sensor
// leaves its snapshot section zeroed and the cycle carries on.
package collector
