// Package defaults centralizes timeout and configuration constants shared
// across the CLI, snapshotter, and metrics server.
package defaults
