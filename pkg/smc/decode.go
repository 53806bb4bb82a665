package smc

import (
	"encoding/binary"
	"math"
)

// Well-known SMC data types. The remaining types fall through to the
// size-based decodings below.
var (
	TypeFlt  = KeyFromString("flt ")
	TypeSP78 = KeyFromString("sp78")
	TypeIOFT = KeyFromString("ioft")
)

// DecodeValue converts the raw bytes of an SMC value into a float reading.
// It never fails: unrecognized or malformed input decodes to 0.
//
// The three vendor encodings (flt, sp78, ioft) cover nearly every observed
// key; the one and two byte fallbacks give best-effort decoding for
// unclassified keys at the cost of a small misinterpretation risk.
func DecodeValue(dataType Key, data []byte) float32 {
	if len(data) == 0 {
		return 0
	}

	switch {
	case dataType == TypeFlt && len(data) >= 4:
		// Payload arrives in the host's native byte order.
		return math.Float32frombits(binary.NativeEndian.Uint32(data))

	case dataType == TypeSP78 && len(data) >= 2:
		// Signed fixed point, 7 integer bits (incl. sign), 8 fractional.
		raw := int16(binary.BigEndian.Uint16(data))
		return float32(raw) / 256.0

	case dataType == TypeIOFT && len(data) >= 8:
		return float32(math.Float64frombits(binary.NativeEndian.Uint64(data)))

	case len(data) == 1:
		return float32(data[0])

	case len(data) == 2:
		return float32(binary.BigEndian.Uint16(data))
	}

	return 0
}
