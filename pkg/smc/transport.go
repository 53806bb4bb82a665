package smc

import "errors"

// SMC exchange commands. The command discriminator selects what the
// controller does with the request.
const (
	CmdReadBytes   uint8 = 5 // fetch a value using previously fetched metadata
	CmdReadKeyInfo uint8 = 9 // fetch a key's metadata
)

// MaxValueSize is the largest value payload the SMC exchange carries.
// Keys reporting a larger size are rejected, not truncated.
const MaxValueSize = 32

// resultKeyNotFound is the controller's result code for a missing key.
// It is an ordinary miss, not an error condition.
const resultKeyNotFound = 132

// ErrUnavailable reports that the SMC endpoint could not be opened on this
// machine. The condition is permanent for the process.
var ErrUnavailable = errors.New("smc: endpoint unavailable")

// ErrKeyNotFound reports a per-key miss: the key does not exist or the
// controller returned a non-zero result for it.
var ErrKeyNotFound = errors.New("smc: key not found")

// Request is one side of an SMC exchange. Value reads (CmdReadBytes) must
// carry the KeyInfo obtained from an earlier metadata request.
type Request struct {
	Key     Key
	Command uint8
	Info    KeyInfo
}

// Response carries the controller's result code and, on success, the value
// bytes and key metadata.
type Response struct {
	Result uint8
	Info   KeyInfo
	Bytes  [MaxValueSize]byte
}

// Transport performs one request/response exchange with the management
// controller. Implementations are expected to open their channel once and
// reuse it; Call blocks for the microseconds-to-low-milliseconds the
// exchange takes.
type Transport interface {
	Call(req Request) (Response, error)
}
