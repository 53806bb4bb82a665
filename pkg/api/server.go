/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pcbridge/pcbridge/pkg/defaults"
	"github.com/pcbridge/pcbridge/pkg/serializer"
)

// Server exposes the daemon's health, readiness, and Prometheus metrics
// endpoints. It carries no sampling logic.
type Server struct {
	httpServer *http.Server
	version    string

	mu    sync.RWMutex
	ready bool
}

// New creates a server listening on addr (host:port).
func New(addr, version string) *Server {
	s := &Server{version: version}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
	}
	return s
}

// SetReady marks the server as ready to serve traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, defaults.ServerShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "not ready",
			Version:   s.version,
			Timestamp: time.Now().UTC(),
		})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, healthResponse{
		Status:    "ready",
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	})
}
