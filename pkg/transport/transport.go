/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pcbridge/pcbridge/pkg/status"
)

// MaxPayload is the display firmware's receive buffer size. Frames whose
// payload reaches it are rejected before any bytes hit the wire.
const MaxPayload = 2048

// ErrPayloadTooLarge reports a snapshot that serialized past MaxPayload.
var ErrPayloadTooLarge = errors.New("transport: payload exceeds frame limit")

var frameMagic = [3]byte{'p', 'c', 's'}

// Frame wraps one serialized snapshot in the display protocol's envelope:
// a 3-byte magic followed by the payload length as a big-endian uint16.
func Frame(payload []byte) ([]byte, error) {
	if len(payload) >= MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	frame := make([]byte, 0, len(payload)+5)
	frame = append(frame, frameMagic[:]...)
	frame = append(frame, byte(len(payload)>>8), byte(len(payload)))
	frame = append(frame, payload...)
	return frame, nil
}

// Sender writes framed snapshots to an already-configured byte stream.
type Sender struct {
	w io.Writer
}

// NewSender creates a sender over w. The caller keeps ownership of the
// stream and closes it.
func NewSender(w io.Writer) *Sender {
	return &Sender{w: w}
}

// Send serializes the snapshot, frames it, and writes the frame in one
// write call so a slow reader never observes a torn header.
func (s *Sender) Send(snap *status.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("transport: serialize snapshot: %w", err)
	}

	frame, err := Frame(payload)
	if err != nil {
		return err
	}

	if _, err := s.w.Write(frame); err != nil {
		return fmt.Errorf("transport: write frame: %w", err)
	}
	return nil
}
