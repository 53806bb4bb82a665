// Package hid implements the secondary temperature source: enumeration of
// vendor HID sensor services and their current temperature events.
//
// It is consulted only when the keyed controller reports nothing for both
// the CPU and GPU domains at once (an all-or-nothing fallback, matching the
// chips where the controller exposes no die temperature keys). Readings are
// bucketed into CPU or GPU by product-name markers and averaged per bucket.
package hid
