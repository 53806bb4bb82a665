// Package power collects package power draw and graphics frequency/load
// derived from differential performance counters.
package power
