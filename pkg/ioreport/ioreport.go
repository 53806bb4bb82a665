package ioreport

import "errors"

// ErrUnavailable reports that the reporting extension is not present on
// this machine. The condition is permanent for the process and disables
// power/frequency derivation entirely.
var ErrUnavailable = errors.New("ioreport: extension unavailable")

// Channel groups and names consumed by the sampler.
const (
	GroupEnergy        = "Energy Model"
	GroupGPUStats      = "GPU Stats"
	SubgroupGPUPStates = "GPU Performance States"

	channelGPUResidency = "GPUPH"
	channelGPUEnergy    = "GPU Energy"
	channelCPUEnergy    = "CPU Energy" // substring: covers DIE_*_CPU Energy on multi-die parts
)

// ChannelKind discriminates the two channel payload variants.
type ChannelKind int

const (
	// KindEnergy is a monotonic integer energy counter.
	KindEnergy ChannelKind = iota
	// KindResidency is a vector of cumulative per-state tick counts.
	KindResidency
)

// State is one entry of a residency vector: the performance state's name
// and its cumulative tick count.
type State struct {
	Name      string
	Residency int64
}

// Channel is one delta channel: an energy counter or a residency vector,
// addressed by group and name.
type Channel struct {
	Group string
	Name  string
	Unit  string

	Kind   ChannelKind
	Energy int64
	States []State
}

// Sample is an opaque cumulative counter snapshot owned by the
// subscription that produced it.
type Sample interface{}

// Subscription captures counter samples and computes per-channel deltas
// between two successive samples. The sampler exclusively owns the
// previous sample and releases it through Release once replaced.
type Subscription interface {
	Sample() (Sample, error)
	Delta(prev, cur Sample) ([]Channel, error)
	Release(s Sample)
}
