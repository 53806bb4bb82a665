/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package snapshotter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcbridge/pcbridge/pkg/collector"
	"github.com/pcbridge/pcbridge/pkg/status"
)

// fakeFactory hands out canned collectors.
type fakeFactory struct {
	host    collector.Collector
	thermal collector.Collector
	power   collector.Collector
}

func (f *fakeFactory) CreateHostCollector() collector.Collector    { return f.host }
func (f *fakeFactory) CreateThermalCollector() collector.Collector { return f.thermal }
func (f *fakeFactory) CreatePowerCollector() collector.Collector   { return f.power }

func noop() collector.Collector {
	return collector.Func(func(ctx context.Context, snap *status.Snapshot) error { return nil })
}

func TestSnapshotAssemblesSections(t *testing.T) {
	f := &fakeFactory{
		host: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			snap.CPU.Load = 12.5
			snap.Memory.Used = 8.0
			return nil
		}),
		thermal: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			snap.CPU.Temp = 61.5
			snap.GPU.Temp = 48.0
			return nil
		}),
		power: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			snap.CPU.Consume = 4.2
			return nil
		}),
	}

	s := New(f, true)
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, status.Command, snap.Cmd)
	assert.NotZero(t, snap.Time)
	assert.InDelta(t, 12.5, float64(snap.CPU.Load), 0.01)
	assert.InDelta(t, 61.5, float64(snap.CPU.Temp), 0.01)
	assert.InDelta(t, 4.2, float64(snap.CPU.Consume), 0.01)

	// Derived display fields.
	assert.EqualValues(t, TJMax, snap.CPU.TJMax)
	assert.InDelta(t, float64(TJMax), float64(snap.CPU.TempMax), 0.01)
	assert.InDelta(t, 61.5, float64(snap.CPU.Core1Temp), 0.01)
	assert.InDelta(t, 38.5, float64(snap.CPU.Core1DistanceToTJMax), 0.01)
}

func TestSnapshotTempsGate(t *testing.T) {
	called := false
	f := &fakeFactory{
		host: noop(),
		thermal: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			called = true
			return nil
		}),
		power: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			called = true
			return nil
		}),
	}

	s := New(f, false)
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	assert.False(t, called, "gated collectors must not run")
	assert.Zero(t, snap.CPU.Temp)
	assert.Zero(t, snap.CPU.Consume)
	// The distance-to-ceiling field still derives from the zero reading.
	assert.InDelta(t, float64(TJMax), float64(snap.CPU.Core1DistanceToTJMax), 0.01)
}

func TestSnapshotCollectorFailureIsSoft(t *testing.T) {
	f := &fakeFactory{
		host: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			return errors.New("probe down")
		}),
		thermal: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			snap.CPU.Temp = 55
			return nil
		}),
		power: noop(),
	}

	s := New(f, true)
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err, "a failing collector does not abort the cycle")
	assert.InDelta(t, 55.0, float64(snap.CPU.Temp), 0.01)
}

func TestSnapshotCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFactory{
		host: collector.Func(func(c context.Context, snap *status.Snapshot) error {
			return c.Err()
		}),
		thermal: noop(),
		power:   noop(),
	}

	s := New(f, true)
	_, err := s.Snapshot(ctx)
	assert.Error(t, err)
}

func TestWarmRunsBaselines(t *testing.T) {
	hostCalls, powerCalls := 0, 0
	f := &fakeFactory{
		host: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			hostCalls++
			return nil
		}),
		thermal: noop(),
		power: collector.Func(func(ctx context.Context, snap *status.Snapshot) error {
			powerCalls++
			return nil
		}),
	}

	s := New(f, true)
	s.Warm(context.Background())
	assert.Equal(t, 1, hostCalls)
	assert.Equal(t, 1, powerCalls)
}
