/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

// Package smc implements the primary hardware sensor source: a binary
// key/value protocol client for the System Management Controller.
//
// Sensors are addressed by 4-character keys. Reading a key normally takes
// two exchanges: a metadata query (value size and type tag) followed by the
// value fetch. The KeyCache probes a fixed candidate list once per process
// and remembers which keys exist, so steady-state sampling pays one
// exchange per key.
//
// Values arrive as tagged raw bytes in several encodings (32-bit float,
// sp78 fixed point, 64-bit float, plain 1/2-byte integers); DecodeValue
// normalizes all of them to a float reading and never fails.
//
// An unavailable controller is a permanent, non-fatal condition: caches
// stay empty and every read reports an absent Reading.
package smc
