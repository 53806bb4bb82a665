package smc

import (
	"fmt"
	"log/slog"
)

// Reading is a decoded sensor value with explicit presence. The zero value
// means "absent". Conversion to the 0.0-means-absent convention happens only
// at the status boundary.
type Reading struct {
	Value float32
	Valid bool
}

// Float returns the reading's value, or 0 when absent.
func (r Reading) Float() float32 {
	if !r.Valid {
		return 0
	}
	return r.Value
}

// Window is a plausibility bound for decoded readings. Values at or outside
// the bounds are treated the same as a key miss.
type Window struct {
	Min, Max float32
}

// Contains reports whether v falls strictly inside the window.
func (w Window) Contains(v float32) bool {
	return v > w.Min && v < w.Max
}

// Plausibility windows for temperature domains. Board sensors sit away from
// the dies and run cooler.
var (
	DieWindow   = Window{Min: 10, Max: 130}
	BoardWindow = Window{Min: 10, Max: 100}
)

// Client issues keyed request/response exchanges against an SMC transport.
type Client struct {
	transport Transport
}

// NewClient wraps an already-open transport.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// Open connects to the machine's SMC endpoint. On platforms without one, or
// when the endpoint cannot be opened, it returns ErrUnavailable; callers
// treat that as a permanent condition and leave dependent metrics absent.
func Open() (*Client, error) {
	t, err := openSystemTransport()
	if err != nil {
		return nil, err
	}
	return NewClient(t), nil
}

// KeyInfo fetches the metadata for a key. A missing key yields
// ErrKeyNotFound.
func (c *Client) KeyInfo(key Key) (KeyInfo, error) {
	resp, err := c.call(Request{Key: key, Command: CmdReadKeyInfo})
	if err != nil {
		return KeyInfo{}, err
	}
	return resp.Info, nil
}

// Read fetches and decodes a key's current value, issuing the metadata
// query first. Use ReadCached when the KeyInfo is already known.
func (c *Client) Read(key Key) (float32, error) {
	info, err := c.KeyInfo(key)
	if err != nil {
		return 0, err
	}
	if info.DataSize == 0 || info.DataSize > MaxValueSize {
		return 0, fmt.Errorf("%w: %s reports %d value bytes", ErrKeyNotFound, key, info.DataSize)
	}
	return c.ReadCached(CachedKey{Key: key, Info: info})
}

// ReadCached fetches and decodes a key's current value using previously
// probed metadata, skipping the metadata round-trip.
func (c *Client) ReadCached(ck CachedKey) (float32, error) {
	resp, err := c.call(Request{Key: ck.Key, Command: CmdReadBytes, Info: ck.Info})
	if err != nil {
		return 0, err
	}
	return DecodeValue(ck.Info.DataType, resp.Bytes[:ck.Info.DataSize]), nil
}

// call performs one exchange and normalizes result codes into errors.
func (c *Client) call(req Request) (Response, error) {
	resp, err := c.transport.Call(req)
	if err != nil {
		return Response{}, fmt.Errorf("smc call for %s: %w", req.Key, err)
	}
	switch resp.Result {
	case 0:
		return resp, nil
	case resultKeyNotFound:
		return Response{}, fmt.Errorf("%w: %s", ErrKeyNotFound, req.Key)
	default:
		slog.Debug("smc exchange miss", "key", req.Key.String(), "result", resp.Result)
		return Response{}, fmt.Errorf("%w: %s result=%d", ErrKeyNotFound, req.Key, resp.Result)
	}
}

// MeanReading reads every cached key, discards readings outside the window,
// and reports the arithmetic mean of the survivors. A domain with zero
// surviving readings reports an absent Reading.
func (c *Client) MeanReading(keys []CachedKey, w Window) Reading {
	var sum float32
	var count int
	for _, ck := range keys {
		v, err := c.ReadCached(ck)
		if err != nil || !w.Contains(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return Reading{}
	}
	return Reading{Value: sum / float32(count), Valid: true}
}
