/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package ioreport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeSubscription hands out integer-tagged samples and a fixed delta.
type fakeSubscription struct {
	next     int
	channels []Channel
	deltaErr error

	released []Sample
}

func (f *fakeSubscription) Sample() (Sample, error) {
	f.next++
	return f.next, nil
}

func (f *fakeSubscription) Delta(prev, cur Sample) ([]Channel, error) {
	if f.deltaErr != nil {
		return nil, f.deltaErr
	}
	return f.channels, nil
}

func (f *fakeSubscription) Release(s Sample) {
	f.released = append(f.released, s)
}

// stepClock advances a fixed amount per reading.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestSamplerFirstSampleIsBaseline(t *testing.T) {
	sub := &fakeSubscription{
		channels: []Channel{
			{Group: GroupEnergy, Name: "CPU Energy", Unit: "nJ", Kind: KindEnergy, Energy: 1_000_000_000},
		},
	}
	s := NewSampler(sub, nil)
	s.now = stepClock(time.Now(), time.Second)

	s.Sample()
	assert.Equal(t, Metrics{}, s.Metrics(), "first sample must not derive")
	assert.Empty(t, sub.released)

	s.Sample()
	assert.InDelta(t, 1.0, s.Metrics().CPUPowerW, 0.001)
	assert.Len(t, sub.released, 1, "previous sample released after replacement")
}

func TestSamplerElapsedFloor(t *testing.T) {
	// 1 mJ over 3 ms would be 0.333 W; the 10 ms floor makes it 0.1 W.
	sub := &fakeSubscription{
		channels: []Channel{
			{Group: GroupEnergy, Name: "CPU Energy", Unit: "nJ", Kind: KindEnergy, Energy: 1_000_000},
		},
	}
	s := NewSampler(sub, nil)
	s.now = stepClock(time.Now(), 3*time.Millisecond)

	s.Sample()
	s.Sample()
	assert.InDelta(t, 0.1, s.Metrics().CPUPowerW, 0.0001)
}

func TestSamplerSumsCPURails(t *testing.T) {
	sub := &fakeSubscription{
		channels: []Channel{
			{Group: GroupEnergy, Name: "DIE_0_CPU Energy", Unit: "mJ", Kind: KindEnergy, Energy: 500},
			{Group: GroupEnergy, Name: "DIE_1_CPU Energy", Unit: "mJ", Kind: KindEnergy, Energy: 700},
			{Group: GroupEnergy, Name: "GPU Energy", Unit: "mJ", Kind: KindEnergy, Energy: 300},
			{Group: GroupEnergy, Name: "GPU SRAM Energy", Unit: "mJ", Kind: KindEnergy, Energy: 9999},
		},
	}
	s := NewSampler(sub, nil)
	s.now = stepClock(time.Now(), time.Second)

	s.Sample()
	s.Sample()

	m := s.Metrics()
	assert.InDelta(t, 1.2, m.CPUPowerW, 0.001, "per-die rails sum")
	assert.InDelta(t, 0.3, m.GPUPowerW, 0.001, "graphics rail matched exactly, not by substring")
}

func TestSamplerResidencyChannel(t *testing.T) {
	sub := &fakeSubscription{
		channels: []Channel{
			{
				Group: GroupGPUStats,
				Name:  "GPUPH",
				Kind:  KindResidency,
				States: []State{
					{Name: "IDLE", Residency: 10},
					{Name: "P1", Residency: 5},
					{Name: "P2", Residency: 10},
					{Name: "P3", Residency: 15},
				},
			},
		},
	}
	s := NewSampler(sub, []uint32{100, 200, 300})
	s.now = stepClock(time.Now(), time.Second)

	s.Sample()
	s.Sample()

	m := s.Metrics()
	assert.InDelta(t, 233.33, m.GPUFreqMHz, 0.01)
	assert.InDelta(t, 75.0, m.GPULoadPct, 0.001)
}

func TestSamplerDeltaFailureKeepsMetrics(t *testing.T) {
	sub := &fakeSubscription{
		channels: []Channel{
			{Group: GroupEnergy, Name: "CPU Energy", Unit: "mJ", Kind: KindEnergy, Energy: 2000},
		},
	}
	s := NewSampler(sub, nil)
	s.now = stepClock(time.Now(), time.Second)

	s.Sample()
	s.Sample()
	assert.InDelta(t, 2.0, s.Metrics().CPUPowerW, 0.001)

	sub.deltaErr = errors.New("transient")
	s.Sample()
	assert.InDelta(t, 2.0, s.Metrics().CPUPowerW, 0.001, "stale metrics survive a failed delta")
	assert.Len(t, sub.released, 2, "previous sample advanced despite the failure")
}

func TestEnergyToWatts(t *testing.T) {
	tests := []struct {
		name   string
		energy int64
		unit   string
		want   float64
	}{
		{"nanojoules", 2_000_000_000, "nJ", 2.0},
		{"microjoules", 1_500_000, "uJ", 1.5},
		{"millijoules", 500, "mJ", 0.5},
		{"unknown unit", 1_000_000, "J", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := energyToWatts(tc.energy, tc.unit, time.Second)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}
