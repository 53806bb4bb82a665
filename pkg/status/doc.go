// Package status defines the snapshot sent to the display device and its
// wire-compatible JSON encoding.
package status
