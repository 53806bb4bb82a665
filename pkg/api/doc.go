/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package api provides the optional HTTP sidecar for daemon mode: health
// and readiness probes plus the Prometheus metrics endpoint. The sampling
// loop itself never depends on it.
package api
