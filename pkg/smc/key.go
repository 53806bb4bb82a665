package smc

import "fmt"

// Key is a four character SMC sensor identifier packed big-endian into a
// uint32 so key comparison and transport encoding are a single integer op.
type Key uint32

// KeyFromString packs a 4-character ASCII key code. Short strings are
// zero-padded; anything past four characters is ignored.
func KeyFromString(s string) Key {
	var k Key
	for i := 0; i < 4; i++ {
		var c byte
		if i < len(s) {
			c = s[i]
		}
		k = k<<8 | Key(c)
	}
	return k
}

// String returns the 4-character representation of the key.
func (k Key) String() string {
	return string([]byte{
		byte(k >> 24),
		byte(k >> 16),
		byte(k >> 8),
		byte(k),
	})
}

// KeyInfo describes how the raw bytes behind a key are to be interpreted.
// It is obtained once per key via a metadata query and is cacheable for the
// process lifetime: the platform's sensor layout does not change while the
// process runs.
type KeyInfo struct {
	DataSize   uint32
	DataType   Key
	Attributes uint8
}

// CachedKey pairs a key with its probed metadata so the value read path can
// skip the metadata round-trip.
type CachedKey struct {
	Key  Key
	Info KeyInfo
}

func (ck CachedKey) String() string {
	return fmt.Sprintf("%s(%s/%d)", ck.Key, ck.Info.DataType, ck.Info.DataSize)
}
