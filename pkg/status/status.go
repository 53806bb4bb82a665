/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"
	"time"
)

// Command tags every snapshot so the display firmware can dispatch it.
const Command = 1230

// Fixed is a float serialized with exactly one decimal place. The display
// firmware parses fixed-width numbers and chokes on scientific notation.
type Fixed float32

// MarshalJSON implements json.Marshaler.
func (f Fixed) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', 1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Fixed) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Fixed(v)
	return nil
}

// Board carries system-level readings.
type Board struct {
	Temp Fixed `json:"temp"`
	RPM  Fixed `json:"rpm"`
	Tick int   `json:"tick"` // process uptime, seconds
}

// CPU carries processor readings. Core1Temp mirrors the package
// temperature; the display renders both.
type CPU struct {
	Temp                 Fixed `json:"temp"`
	TempMax              Fixed `json:"tempMax"`
	Load                 Fixed `json:"load"`
	Consume              Fixed `json:"consume"`
	TJMax                int   `json:"tjMax"`
	Core1DistanceToTJMax Fixed `json:"core1DistanceToTjMax"`
	Core1Temp            Fixed `json:"core1Temp"`
}

// GPU carries graphics readings. MemUsed and MemTotal are always zero on
// unified-memory machines.
type GPU struct {
	Temp     Fixed `json:"temp"`
	TempMax  Fixed `json:"tempMax"`
	Load     Fixed `json:"load"`
	Consume  Fixed `json:"consume"`
	RPM      Fixed `json:"rpm"`
	MemUsed  Fixed `json:"memUsed"`
	MemTotal Fixed `json:"memTotal"`
	Freq     Fixed `json:"freq"`
}

// Storage carries disk readings. Read and Write rates are always zero.
type Storage struct {
	Temp    Fixed `json:"temp"`
	Read    Fixed `json:"read"`
	Write   Fixed `json:"write"`
	Percent Fixed `json:"percent"`
}

// Memory carries virtual-memory readings in GB.
type Memory struct {
	Used    Fixed `json:"used"`
	Avail   Fixed `json:"avail"`
	Percent Fixed `json:"percent"`
}

// Network carries throughput in Mb/s.
type Network struct {
	Up   Fixed `json:"up"`
	Down Fixed `json:"down"`
}

// Snapshot is one complete sampling cycle's output. Zero-valued fields
// mean "not sampled" to the display, never an error.
type Snapshot struct {
	Board   Board   `json:"board"`
	CPU     CPU     `json:"cpu"`
	GPU     GPU     `json:"gpu"`
	Storage Storage `json:"storage"`
	Memory  Memory  `json:"memory"`
	Network Network `json:"network"`
	Cmd     int     `json:"cmd"`
	Time    int64   `json:"time"`
}

// New returns a snapshot with the command tag and timestamp set.
func New(now time.Time) *Snapshot {
	return &Snapshot{
		Cmd:  Command,
		Time: Timestamp(now),
	}
}

// Timestamp encodes local wall-clock time as a Unix value. The display
// treats the number as UTC, so the zone offset is folded in; the extra
// hour subtracted compensates the firmware's own DST handling.
func Timestamp(now time.Time) int64 {
	_, offset := now.Zone()
	return now.Unix() + int64(offset) - 3600
}
