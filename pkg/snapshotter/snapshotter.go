/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package snapshotter

import (
	"context"
	"log/slog"
	"time"

	"github.com/pcbridge/pcbridge/pkg/collector"
	"github.com/pcbridge/pcbridge/pkg/status"
)

// TJMax is the thermal junction ceiling reported to the display.
const TJMax = 100

// Snapshotter assembles one complete snapshot per call.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*status.Snapshot, error)
}

// CycleSnapshotter runs the collectors sequentially each cycle and
// assembles their readings into a fresh snapshot. Temperature, power, and
// frequency collection is gated behind TempsEnabled; when disabled those
// fields stay zero, which downstream consumers read as "not sampled".
type CycleSnapshotter struct {
	// TempsEnabled gates the thermal and power collectors.
	TempsEnabled bool

	host    collector.Collector
	thermal collector.Collector
	power   collector.Collector

	now func() time.Time
}

// New builds a snapshotter from the factory. Passing nil uses the default
// production factory. The thermal and power collectors are constructed
// only when enabled so a gated run never touches the hardware endpoints.
func New(factory collector.Factory, tempsEnabled bool) *CycleSnapshotter {
	if factory == nil {
		factory = collector.NewDefaultFactory()
	}

	s := &CycleSnapshotter{
		TempsEnabled: tempsEnabled,
		host:         factory.CreateHostCollector(),
		now:          time.Now,
	}
	if tempsEnabled {
		s.thermal = factory.CreateThermalCollector()
		s.power = factory.CreatePowerCollector()
	}
	return s
}

// Warm primes the delta baselines so the first reported cycle carries
// rates instead of zeros. Call once before the sampling loop.
func (s *CycleSnapshotter) Warm(ctx context.Context) {
	var scratch status.Snapshot
	if err := s.host.Collect(ctx, &scratch); err != nil {
		slog.Debug("host warm-up failed", slog.String("error", err.Error()))
	}
	if s.power != nil {
		if err := s.power.Collect(ctx, &scratch); err != nil {
			slog.Debug("power warm-up failed", slog.String("error", err.Error()))
		}
	}
}

// Snapshot runs one full sampling cycle. Collector failures zero their
// sections and are logged, not returned; only context cancellation aborts
// the cycle.
func (s *CycleSnapshotter) Snapshot(ctx context.Context) (*status.Snapshot, error) {
	start := s.now()
	defer func() {
		cycleDuration.Observe(time.Since(start).Seconds())
	}()

	snap := status.New(start)

	collectors := []struct {
		name string
		c    collector.Collector
	}{
		{"host", s.host},
		{"thermal", s.thermal},
		{"power", s.power},
	}

	for _, col := range collectors {
		if col.c == nil {
			continue
		}
		collectorStart := s.now()
		err := col.c.Collect(ctx, snap)
		collectorDuration.WithLabelValues(col.name).Observe(time.Since(collectorStart).Seconds())
		if err != nil {
			if ctx.Err() != nil {
				cycleTotal.WithLabelValues("error").Inc()
				return nil, err
			}
			slog.Warn("collector failed", slog.String("collector", col.name), slog.String("error", err.Error()))
		}
	}

	s.finalize(snap)

	cycleTotal.WithLabelValues("success").Inc()
	cpuTemperature.Set(float64(snap.CPU.Temp))
	cpuPower.Set(float64(snap.CPU.Consume))
	return snap, nil
}

// finalize fills the derived fields the display expects on every
// snapshot, gated or not.
func (s *CycleSnapshotter) finalize(snap *status.Snapshot) {
	snap.CPU.TempMax = TJMax
	snap.CPU.TJMax = TJMax
	snap.CPU.Core1Temp = snap.CPU.Temp
	snap.CPU.Core1DistanceToTJMax = TJMax - snap.CPU.Temp
	snap.GPU.TempMax = TJMax
}
