/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package thermal

import (
	"context"
	"log/slog"

	"github.com/pcbridge/pcbridge/pkg/hid"
	"github.com/pcbridge/pcbridge/pkg/smc"
	"github.com/pcbridge/pcbridge/pkg/status"
)

// Collector reads package, graphics, and board temperatures plus fan
// speeds. The management controller is the primary source; when it yields
// neither a CPU nor a GPU reading the event-system fallback covers both.
// The fallback is all-or-nothing: a single valid primary reading keeps
// the fallback out of the cycle entirely.
type Collector struct {
	client   *smc.Client
	cache    *smc.KeyCache
	fallback *hid.Source
}

// New opens the production sensor sources. Either source failing to open
// just disables it; the collector then reports zeros for its readings.
func New() *Collector {
	client, err := smc.Open()
	if err != nil {
		slog.Debug("management controller unavailable", slog.String("error", err.Error()))
		client = nil
	}

	c := &Collector{
		client: client,
		cache:  smc.NewKeyCache(client),
	}

	if src, err := hid.Open(); err == nil {
		c.fallback = src
	} else {
		slog.Debug("event-system fallback unavailable", slog.String("error", err.Error()))
	}
	return c
}

// NewWithSources wires explicit sources, for tests.
func NewWithSources(client *smc.Client, cache *smc.KeyCache, fallback *hid.Source) *Collector {
	return &Collector{client: client, cache: cache, fallback: fallback}
}

// Collect fills the temperature and fan fields.
func (c *Collector) Collect(ctx context.Context, snap *status.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cpu := c.cache.MeanTemp(smc.DomainCPU, smc.DieWindow)
	gpu := c.cache.MeanTemp(smc.DomainGPU, smc.DieWindow)
	board := c.cache.MeanTemp(smc.DomainBoard, smc.BoardWindow)

	if !cpu.Valid && !gpu.Valid && c.fallback != nil {
		cpu, gpu = c.fallback.Temperatures()
	}

	snap.CPU.Temp = status.Fixed(cpu.Float())
	snap.GPU.Temp = status.Fixed(gpu.Float())
	snap.Board.Temp = status.Fixed(board.Float())

	if c.client != nil {
		fans := c.client.Fans()
		if len(fans) > 0 {
			snap.Board.RPM = status.Fixed(fans[0].RPM)
		}
		if len(fans) > 1 {
			snap.GPU.RPM = status.Fixed(fans[1].RPM)
		}
	}
	return nil
}
