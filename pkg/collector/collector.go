/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package collector

import (
	"context"

	"github.com/pcbridge/pcbridge/pkg/status"
)

// Collector fills its portion of a snapshot. Collectors keep their own
// previous-value state for delta quantities and must tolerate repeated
// calls at arbitrary intervals.
type Collector interface {
	Collect(ctx context.Context, snap *status.Snapshot) error
}

// Func adapts a plain function to the Collector interface.
type Func func(ctx context.Context, snap *status.Snapshot) error

// Collect implements Collector.
func (f Func) Collect(ctx context.Context, snap *status.Snapshot) error {
	return f(ctx, snap)
}
