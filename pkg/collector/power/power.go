/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package power

import (
	"context"
	"log/slog"

	"github.com/pcbridge/pcbridge/pkg/ioreport"
	"github.com/pcbridge/pcbridge/pkg/status"
)

// Sampler is the counter-delta source the collector drives once per cycle.
type Sampler interface {
	Sample()
	Metrics() ioreport.Metrics
}

// Collector fills power draw, graphics frequency, and graphics load from
// differential counter samples. Without a sampler it is a no-op and the
// fields stay zero.
type Collector struct {
	sampler Sampler
}

// New opens the platform counter subscription. On machines without the
// reporting extension the collector runs disabled.
func New() *Collector {
	s, err := ioreport.Open()
	if err != nil {
		slog.Debug("power reporting unavailable", slog.String("error", err.Error()))
		return &Collector{}
	}
	return &Collector{sampler: s}
}

// NewWithSampler wires an explicit sampler, for tests.
func NewWithSampler(s Sampler) *Collector {
	return &Collector{sampler: s}
}

// Collect advances the sampler and copies its current metrics. The first
// cycle after startup only establishes the counter baseline, so consumers
// see zeros until the second cycle.
func (c *Collector) Collect(ctx context.Context, snap *status.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.sampler == nil {
		return nil
	}

	c.sampler.Sample()
	m := c.sampler.Metrics()

	snap.CPU.Consume = status.Fixed(m.CPUPowerW)
	snap.GPU.Consume = status.Fixed(m.GPUPowerW)
	snap.GPU.Freq = status.Fixed(m.GPUFreqMHz)
	snap.GPU.Load = status.Fixed(m.GPULoadPct)
	return nil
}
