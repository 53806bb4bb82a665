/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcbridge/pcbridge/pkg/status"
)

func restoreProbes(t *testing.T) {
	t.Helper()
	origCPU, origMem, origDisk, origNet := cpuTimes, virtualMemory, diskUsage, netCounters
	t.Cleanup(func() {
		cpuTimes, virtualMemory, diskUsage, netCounters = origCPU, origMem, origDisk, origNet
	})
}

func TestCPULoadDelta(t *testing.T) {
	restoreProbes(t)

	samples := [][]cpu.TimesStat{
		{{User: 100, System: 50, Idle: 850}},
		{{User: 130, System: 60, Idle: 910}},
	}
	call := 0
	cpuTimes = func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error) {
		s := samples[call]
		if call < len(samples)-1 {
			call++
		}
		return s, nil
	}

	c := &Collector{now: time.Now}

	assert.Zero(t, c.cpuLoad(context.Background()), "first call is baseline only")
	// Busy delta 40 of total delta 100.
	assert.InDelta(t, 40.0, c.cpuLoad(context.Background()), 0.001)
}

func TestNetRatesDelta(t *testing.T) {
	restoreProbes(t)

	samples := []net.IOCountersStat{
		{BytesRecv: 1_000_000, BytesSent: 500_000},
		{BytesRecv: 2_250_000, BytesSent: 750_000},
	}
	call := 0
	netCounters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
		s := samples[call]
		if call < len(samples)-1 {
			call++
		}
		return []net.IOCountersStat{s}, nil
	}

	base := time.Now()
	tick := 0
	c := &Collector{now: func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}}

	up, down := c.netRates(context.Background())
	assert.Zero(t, up)
	assert.Zero(t, down)

	up, down = c.netRates(context.Background())
	assert.InDelta(t, 10.0, down, 0.001, "1.25 MB over 1 s is 10 Mb/s")
	assert.InDelta(t, 2.0, up, 0.001)
}

func TestCollectFillsSections(t *testing.T) {
	restoreProbes(t)

	cpuTimes = func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error) {
		return []cpu.TimesStat{{User: 10, Idle: 90}}, nil
	}
	virtualMemory = func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{
			Used:        12 * bytesPerGB,
			Available:   20 * bytesPerGB,
			UsedPercent: 37.5,
		}, nil
	}
	diskUsage = func(ctx context.Context, path string) (*disk.UsageStat, error) {
		assert.Equal(t, "/", path)
		return &disk.UsageStat{UsedPercent: 63.2}, nil
	}
	netCounters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
		return []net.IOCountersStat{{BytesRecv: 100, BytesSent: 100}}, nil
	}

	c := New("/")
	snap := &status.Snapshot{}
	require.NoError(t, c.Collect(context.Background(), snap))

	assert.InDelta(t, 12.0, float64(snap.Memory.Used), 0.01)
	assert.InDelta(t, 20.0, float64(snap.Memory.Avail), 0.01)
	assert.InDelta(t, 37.5, float64(snap.Memory.Percent), 0.01)
	assert.InDelta(t, 63.2, float64(snap.Storage.Percent), 0.01)
	assert.GreaterOrEqual(t, snap.Board.Tick, 0)
}

func TestCollectSoftFailures(t *testing.T) {
	restoreProbes(t)

	probeErr := errors.New("probe down")
	cpuTimes = func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error) { return nil, probeErr }
	virtualMemory = func(ctx context.Context) (*mem.VirtualMemoryStat, error) { return nil, probeErr }
	diskUsage = func(ctx context.Context, path string) (*disk.UsageStat, error) { return nil, probeErr }
	netCounters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) { return nil, probeErr }

	c := New("/")
	snap := &status.Snapshot{}
	require.NoError(t, c.Collect(context.Background(), snap), "probe failures are soft")
	assert.Zero(t, snap.CPU.Load)
	assert.Zero(t, snap.Memory.Used)
	assert.Zero(t, snap.Storage.Percent)
}

func TestCollectCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Collector{now: time.Now}
	assert.Error(t, c.Collect(ctx, &status.Snapshot{}))
}
