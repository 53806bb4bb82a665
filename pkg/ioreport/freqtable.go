package ioreport

import "encoding/binary"

// maxTableStates caps the frequency table at the controller's state count.
const maxTableStates = 32

// ParseVoltageStates decodes the platform registry's voltage/frequency
// table: little-endian uint32 pairs of (frequency Hz, voltage). Voltages
// are discarded, frequencies reduced to whole MHz, zeros skipped.
func ParseVoltageStates(data []byte) []uint32 {
	var freqs []uint32
	for off := 0; off+8 <= len(data) && len(freqs) < maxTableStates; off += 8 {
		hz := binary.LittleEndian.Uint32(data[off:])
		if mhz := hz / 1_000_000; mhz > 0 {
			freqs = append(freqs, mhz)
		}
	}
	return freqs
}
