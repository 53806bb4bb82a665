// Package transport frames snapshots for the display device and manages
// the serial line that carries them.
package transport
