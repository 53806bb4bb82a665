/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package host

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/pcbridge/pcbridge/pkg/status"
)

const bytesPerGB = 1024 * 1024 * 1024

// Probe hooks, overridable in tests.
var (
	cpuTimes      = cpu.TimesWithContext
	virtualMemory = mem.VirtualMemoryWithContext
	diskUsage     = disk.UsageWithContext
	netCounters   = net.IOCountersWithContext
)

// Collector gathers the scalar host readings: CPU load, memory, disk,
// network throughput, and uptime. CPU load and network throughput are
// deltas against the previous call; the constructor primes both baselines
// so the first cycle reports rates, not lifetime totals.
type Collector struct {
	diskPath string
	start    time.Time
	now      func() time.Time

	mu        sync.Mutex
	prevIdle  float64
	prevTotal float64
	haveCPU   bool

	prevRecv  uint64
	prevSent  uint64
	prevNetAt time.Time
	haveNet   bool
}

// New creates a host collector and primes its delta baselines.
func New(diskPath string) *Collector {
	c := &Collector{
		diskPath: diskPath,
		start:    time.Now(),
		now:      time.Now,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.cpuLoad(ctx)
	c.netRates(ctx)
	return c
}

// Collect fills the CPU load, memory, storage, network, and uptime fields.
// Probe failures zero the affected section and are not fatal.
func (c *Collector) Collect(ctx context.Context, snap *status.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap.Board.Tick = int(c.now().Sub(c.start).Seconds())
	snap.CPU.Load = status.Fixed(c.cpuLoad(ctx))

	if vm, err := virtualMemory(ctx); err == nil {
		snap.Memory.Used = status.Fixed(float64(vm.Used) / bytesPerGB)
		snap.Memory.Avail = status.Fixed(float64(vm.Available) / bytesPerGB)
		snap.Memory.Percent = status.Fixed(vm.UsedPercent)
	} else {
		slog.Debug("memory probe failed", slog.String("error", err.Error()))
	}

	if du, err := diskUsage(ctx, c.diskPath); err == nil {
		snap.Storage.Percent = status.Fixed(du.UsedPercent)
	} else {
		slog.Debug("disk probe failed", slog.String("path", c.diskPath), slog.String("error", err.Error()))
	}

	up, down := c.netRates(ctx)
	snap.Network.Up = status.Fixed(up)
	snap.Network.Down = status.Fixed(down)

	return nil
}

// cpuLoad returns the busy percentage since the previous call. The first
// call only records the baseline and returns 0.
func (c *Collector) cpuLoad(ctx context.Context) float64 {
	times, err := cpuTimes(ctx, false)
	if err != nil || len(times) == 0 {
		if err != nil {
			slog.Debug("cpu probe failed", slog.String("error", err.Error()))
		}
		return 0
	}

	t := times[0]
	idle := t.Idle + t.Iowait
	total := idle + t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal

	c.mu.Lock()
	defer c.mu.Unlock()

	idleDiff := idle - c.prevIdle
	totalDiff := total - c.prevTotal
	had := c.haveCPU

	c.prevIdle = idle
	c.prevTotal = total
	c.haveCPU = true

	if !had || totalDiff <= 0 {
		return 0
	}
	return (1 - idleDiff/totalDiff) * 100
}

// netRates returns aggregate up/down throughput in Mb/s since the
// previous call. The first call only records the baseline and returns 0.
func (c *Collector) netRates(ctx context.Context) (up, down float64) {
	counters, err := netCounters(ctx, false)
	if err != nil || len(counters) == 0 {
		if err != nil {
			slog.Debug("network probe failed", slog.String("error", err.Error()))
		}
		return 0, 0
	}

	recv, sent := counters[0].BytesRecv, counters[0].BytesSent
	at := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := at.Sub(c.prevNetAt).Seconds()
	had := c.haveNet && c.prevRecv > 0

	if had && elapsed > 0 {
		down = float64(recv-c.prevRecv) / elapsed * 8 / 1e6
		up = float64(sent-c.prevSent) / elapsed * 8 / 1e6
	}

	c.prevRecv = recv
	c.prevSent = sent
	c.prevNetAt = at
	c.haveNet = true
	return up, down
}
