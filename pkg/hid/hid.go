package hid

import (
	"errors"
	"strings"

	"github.com/pcbridge/pcbridge/pkg/smc"
)

// ErrUnavailable reports that the event system client could not be created.
var ErrUnavailable = errors.New("hid: event system unavailable")

// Service is one enumerated temperature sensor service: its human-readable
// product name and the current temperature event value.
type Service struct {
	Name        string
	Temperature float32
}

// Enumerator lists the vendor temperature sensor services currently
// reporting events. Implementations own every handle they acquire and must
// release them before returning, including on early-exit paths.
type Enumerator interface {
	Services() ([]Service, error)
}

// Source reads temperatures through the service-event channel. It is the
// fallback used when the keyed controller yields nothing for both the CPU
// and GPU domains.
type Source struct {
	enum Enumerator
}

// NewSource wraps an enumerator.
func NewSource(e Enumerator) *Source {
	return &Source{enum: e}
}

// Open creates a source backed by the platform's event system, or
// ErrUnavailable where there is none.
func Open() (*Source, error) {
	e, err := systemEnumerator()
	if err != nil {
		return nil, err
	}
	return NewSource(e), nil
}

// Temperatures enumerates sensor services, discards readings outside the
// die plausibility window, classifies the rest by product name, and reports
// the per-bucket mean. An empty bucket reports absent.
func (s *Source) Temperatures() (cpu, gpu smc.Reading) {
	services, err := s.enum.Services()
	if err != nil {
		return smc.Reading{}, smc.Reading{}
	}

	var cpuSum, gpuSum float32
	var cpuCount, gpuCount int

	for _, svc := range services {
		if !smc.DieWindow.Contains(svc.Temperature) {
			continue
		}
		switch classify(svc.Name) {
		case bucketCPU:
			cpuSum += svc.Temperature
			cpuCount++
		case bucketGPU:
			gpuSum += svc.Temperature
			gpuCount++
		}
	}

	if cpuCount > 0 {
		cpu = smc.Reading{Value: cpuSum / float32(cpuCount), Valid: true}
	}
	if gpuCount > 0 {
		gpu = smc.Reading{Value: gpuSum / float32(gpuCount), Valid: true}
	}
	return cpu, gpu
}

type bucket int

const (
	bucketNone bucket = iota
	bucketCPU
	bucketGPU
)

// classify assigns a sensor to a bucket by its product name. The compute
// cluster sensors are named "pACC/eACC MTR Temp Sensor*", the graphics ones
// "GPU MTR Temp Sensor*"; the bare CPU/GPU markers catch other generations.
func classify(name string) bucket {
	switch {
	case strings.Contains(name, "ACC MTR Temp"), strings.Contains(name, "CPU"):
		return bucketCPU
	case strings.Contains(name, "GPU MTR Temp"), strings.Contains(name, "GPU"):
		return bucketGPU
	default:
		return bucketNone
	}
}
