package ioreport

import (
	"strings"
	"time"
)

// minElapsed floors the delta window so a burst of closely spaced samples
// cannot blow up the rate division.
const minElapsed = 10 * time.Millisecond

// Metrics are the rate quantities derived from one counter delta. Values
// persist between successful derivations: a cycle that cannot produce a
// delta leaves the previous cycle's numbers in place.
type Metrics struct {
	CPUPowerW  float64
	GPUPowerW  float64
	GPUFreqMHz float64
	GPULoadPct float64
}

// Sampler derives instantaneous power and frequency from differential
// counter samples. It is best-effort telemetry: every failure path yields
// zero or stale metrics, never an error to the caller.
type Sampler struct {
	sub   Subscription
	freqs []uint32 // performance-state frequency table, MHz

	prev     Sample
	prevTime time.Time
	metrics  Metrics

	now func() time.Time
}

// NewSampler creates a sampler over an open subscription and an optional
// frequency table. An empty table disables frequency/load derivation but
// leaves energy-based power derivation working.
func NewSampler(sub Subscription, freqs []uint32) *Sampler {
	return &Sampler{
		sub:   sub,
		freqs: freqs,
		now:   time.Now,
	}
}

// Open subscribes to the platform's energy and graphics performance-state
// channel groups and loads the frequency table. On machines without the
// reporting extension it returns ErrUnavailable and the caller should run
// without derived power metrics.
func Open() (*Sampler, error) {
	sub, err := openSystemSubscription()
	if err != nil {
		return nil, err
	}
	return NewSampler(sub, loadFrequencyTable()), nil
}

// Metrics returns the most recently derived values.
func (s *Sampler) Metrics() Metrics {
	return s.metrics
}

// Sample captures a new counter snapshot and, when a previous snapshot
// exists, derives metrics from the delta. The first call only establishes
// the baseline. The new snapshot always replaces the previous one, even
// when delta computation fails.
func (s *Sampler) Sample() {
	cur, err := s.sub.Sample()
	if err != nil {
		return
	}
	captured := s.now()

	if s.prev != nil {
		elapsed := captured.Sub(s.prevTime)
		if elapsed < minElapsed {
			elapsed = minElapsed
		}

		if channels, err := s.sub.Delta(s.prev, cur); err == nil {
			s.derive(channels, elapsed)
		}
		s.sub.Release(s.prev)
	}

	s.prev = cur
	s.prevTime = captured
}

// derive folds one delta's channels into the cached metrics.
func (s *Sampler) derive(channels []Channel, elapsed time.Duration) {
	var m Metrics
	for _, ch := range channels {
		switch ch.Group {
		case GroupEnergy:
			if ch.Kind != KindEnergy {
				continue
			}
			switch {
			case strings.Contains(ch.Name, channelCPUEnergy):
				// Multiple rails (per-die on Ultra parts) sum up.
				m.CPUPowerW += energyToWatts(ch.Energy, ch.Unit, elapsed)
			case ch.Name == channelGPUEnergy:
				m.GPUPowerW += energyToWatts(ch.Energy, ch.Unit, elapsed)
			}
		case GroupGPUStats:
			if ch.Kind == KindResidency && ch.Name == channelGPUResidency {
				m.GPUFreqMHz, m.GPULoadPct = residencyMetrics(ch.States, s.freqs)
			}
		}
	}
	s.metrics = m
}

// energyToWatts converts a cumulative energy delta to average watts over
// the elapsed window. Unknown units contribute nothing.
func energyToWatts(energy int64, unit string, elapsed time.Duration) float64 {
	perSecond := float64(energy) / elapsed.Seconds()
	switch unit {
	case "nJ":
		return perSecond / 1e9
	case "uJ":
		return perSecond / 1e6
	case "mJ":
		return perSecond / 1e3
	default:
		return 0
	}
}
