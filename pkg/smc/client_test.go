package smc

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport serves canned key values and counts exchanges per command.
type fakeTransport struct {
	values map[Key]fakeValue

	infoCalls int
	readCalls int
}

type fakeValue struct {
	info  KeyInfo
	bytes []byte
}

func fltValue(f float32) fakeValue {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], math.Float32bits(f))
	return fakeValue{
		info:  KeyInfo{DataSize: 4, DataType: TypeFlt},
		bytes: buf[:],
	}
}

func (ft *fakeTransport) set(key string, v fakeValue) {
	if ft.values == nil {
		ft.values = make(map[Key]fakeValue)
	}
	ft.values[KeyFromString(key)] = v
}

func (ft *fakeTransport) Call(req Request) (Response, error) {
	v, ok := ft.values[req.Key]
	if !ok {
		return Response{Result: resultKeyNotFound}, nil
	}

	var resp Response
	switch req.Command {
	case CmdReadKeyInfo:
		ft.infoCalls++
		resp.Info = v.info
	case CmdReadBytes:
		ft.readCalls++
		copy(resp.Bytes[:], v.bytes)
	}
	return resp, nil
}

func TestClientRead(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("Tp01", fltValue(52.5))

	c := NewClient(ft)

	v, err := c.Read(KeyFromString("Tp01"))
	require.NoError(t, err)
	assert.InDelta(t, 52.5, v, 0.001)

	_, err = c.Read(KeyFromString("Txxx"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClientRead_OversizedValueRejected(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("Tbad", fakeValue{info: KeyInfo{DataSize: 64, DataType: TypeFlt}})

	c := NewClient(ft)
	_, err := c.Read(KeyFromString("Tbad"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClientReadCached_SkipsMetadataQuery(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("Tp01", fltValue(48))

	c := NewClient(ft)
	info, err := c.KeyInfo(KeyFromString("Tp01"))
	require.NoError(t, err)

	before := ft.infoCalls
	v, err := c.ReadCached(CachedKey{Key: KeyFromString("Tp01"), Info: info})
	require.NoError(t, err)
	assert.InDelta(t, 48, v, 0.001)
	assert.Equal(t, before, ft.infoCalls, "cached read must not re-query metadata")
	assert.Equal(t, 1, ft.readCalls)
}

func TestMeanReading_PlausibilityWindow(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("T001", fltValue(5))   // below window, discarded
	ft.set("T002", fltValue(45))  // kept
	ft.set("T003", fltValue(140)) // above window, discarded

	c := NewClient(ft)
	var keys []CachedKey
	for _, s := range []string{"T001", "T002", "T003"} {
		k := KeyFromString(s)
		keys = append(keys, CachedKey{Key: k, Info: ft.values[k].info})
	}

	r := c.MeanReading(keys, DieWindow)
	require.True(t, r.Valid)
	assert.InDelta(t, 45.0, r.Value, 0.001)
}

func TestMeanReading_EmptyDomainAbsent(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("T001", fltValue(150))

	c := NewClient(ft)
	k := KeyFromString("T001")
	r := c.MeanReading([]CachedKey{{Key: k, Info: ft.values[k].info}}, DieWindow)

	assert.False(t, r.Valid)
	assert.Zero(t, r.Float())
}

func TestFans(t *testing.T) {
	ft := &fakeTransport{}
	ft.set("F0Ac", fltValue(1200))
	ft.set("F0Mn", fltValue(600))
	ft.set("F0Mx", fltValue(4500))
	ft.set("F1Ac", fltValue(1350))
	// No F2Ac: enumeration stops at the second fan.

	c := NewClient(ft)
	fans := c.Fans()

	require.Len(t, fans, 2)
	assert.InDelta(t, 1200, fans[0].RPM, 0.001)
	assert.InDelta(t, 600, fans[0].MinRPM, 0.001)
	assert.InDelta(t, 4500, fans[0].MaxRPM, 0.001)
	assert.InDelta(t, 1350, fans[1].RPM, 0.001)
}
