/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pcb_cycle_duration_seconds",
			Help:    "Time taken to assemble a complete snapshot",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	cycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pcb_cycle_total",
			Help: "Total number of sampling cycles",
		},
		[]string{"status"}, // success or error
	)

	collectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pcb_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"collector"}, // host, thermal, power
	)

	cpuTemperature = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pcb_cpu_temperature_celsius",
			Help: "Last sampled CPU package temperature (0 when absent)",
		},
	)

	cpuPower = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pcb_cpu_power_watts",
			Help: "Last sampled CPU package power draw (0 when absent)",
		},
	)
)
