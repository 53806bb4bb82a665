/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// OpenSerial opens and configures the display's serial line: 8 data bits,
// no parity, one stop bit, no flow control.
func OpenSerial(port string, baud int) (io.ReadWriteCloser, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("transport: open serial port %s: %w", port, err)
	}

	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("transport: flush serial port %s: %w", port, err)
	}
	if err := p.ResetOutputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("transport: flush serial port %s: %w", port, err)
	}
	return p, nil
}
