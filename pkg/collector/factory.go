/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package collector

import (
	"github.com/pcbridge/pcbridge/pkg/collector/host"
	"github.com/pcbridge/pcbridge/pkg/collector/power"
	"github.com/pcbridge/pcbridge/pkg/collector/thermal"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateHostCollector() Collector
	CreateThermalCollector() Collector
	CreatePowerCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	DiskPath string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		DiskPath: "/",
	}
}

// CreateHostCollector creates the scalar host collector (CPU load,
// memory, disk, network, uptime).
func (f *DefaultFactory) CreateHostCollector() Collector {
	return host.New(f.DiskPath)
}

// CreateThermalCollector creates the temperature and fan collector.
func (f *DefaultFactory) CreateThermalCollector() Collector {
	return thermal.New()
}

// CreatePowerCollector creates the power and frequency collector.
func (f *DefaultFactory) CreatePowerCollector() Collector {
	return power.New()
}
