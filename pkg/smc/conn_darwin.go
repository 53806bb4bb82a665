//go:build darwin

package smc

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <stdint.h>
#include <string.h>
#include <IOKit/IOKitLib.h>

// Exchange structure shared with the controller. Field layout must match
// the kernel's format exactly.
typedef struct {
	uint8_t  major;
	uint8_t  minor;
	uint8_t  build;
	uint8_t  reserved;
	uint16_t release;
} smcVers;

typedef struct {
	uint16_t version;
	uint16_t length;
	uint32_t cpuPLimit;
	uint32_t gpuPLimit;
	uint32_t memPLimit;
} smcPLimit;

typedef struct {
	uint32_t dataSize;
	uint32_t dataType;
	uint8_t  dataAttributes;
} smcKeyInfo;

typedef struct {
	uint32_t   key;
	smcVers    vers;
	smcPLimit  pLimit;
	smcKeyInfo keyInfo;
	uint8_t    result;
	uint8_t    status;
	uint8_t    data8;
	uint32_t   data32;
	uint8_t    bytes[32];
} smcParam;

static kern_return_t smcCall(io_connect_t conn, smcParam *in, smcParam *out) {
	size_t outSize = sizeof(smcParam);
	return IOConnectCallStructMethod(conn, 2, in, sizeof(smcParam), out, &outSize);
}
*/
import "C"

import (
	"fmt"
	"sync"
)

// ioTransport talks to the AppleSMCKeysEndpoint user client. The connection
// is opened once per process and kept for its lifetime.
type ioTransport struct {
	mu   sync.Mutex
	conn C.io_connect_t
}

var (
	systemTransport     *ioTransport
	systemTransportErr  error
	systemTransportOnce sync.Once
)

// openSystemTransport opens the machine's SMC endpoint, idempotently.
func openSystemTransport() (Transport, error) {
	systemTransportOnce.Do(func() {
		conn, err := openKeysEndpoint()
		if err != nil {
			systemTransportErr = err
			return
		}
		systemTransport = &ioTransport{conn: conn}
	})
	if systemTransportErr != nil {
		return nil, systemTransportErr
	}
	return systemTransport, nil
}

// openKeysEndpoint walks the AppleSMC services looking for the keys
// endpoint user client.
func openKeysEndpoint() (C.io_connect_t, error) {
	var iter C.io_iterator_t
	kr := C.IOServiceGetMatchingServices(0, C.IOServiceMatching(C.CString("AppleSMC")), &iter)
	if kr != C.KERN_SUCCESS {
		return 0, fmt.Errorf("%w: AppleSMC service lookup failed (kr=%d)", ErrUnavailable, int(kr))
	}
	defer C.IOObjectRelease(C.io_object_t(iter))

	for {
		device := C.IOIteratorNext(iter)
		if device == 0 {
			break
		}

		var name [128]C.char
		C.IORegistryEntryGetName(device, &name[0])

		if C.GoString(&name[0]) == "AppleSMCKeysEndpoint" {
			var conn C.io_connect_t
			kr = C.IOServiceOpen(device, C.mach_task_self_, 0, &conn)
			C.IOObjectRelease(device)
			if kr == C.KERN_SUCCESS {
				return conn, nil
			}
			continue
		}
		C.IOObjectRelease(device)
	}

	return 0, fmt.Errorf("%w: AppleSMCKeysEndpoint not found", ErrUnavailable)
}

// Call performs one exchange over the IOKit connection.
func (t *ioTransport) Call(req Request) (Response, error) {
	var in, out C.smcParam
	in.key = C.uint32_t(req.Key)
	in.data8 = C.uint8_t(req.Command)
	in.keyInfo.dataSize = C.uint32_t(req.Info.DataSize)
	in.keyInfo.dataType = C.uint32_t(req.Info.DataType)
	in.keyInfo.dataAttributes = C.uint8_t(req.Info.Attributes)

	t.mu.Lock()
	kr := C.smcCall(t.conn, &in, &out)
	t.mu.Unlock()
	if kr != C.KERN_SUCCESS {
		return Response{}, fmt.Errorf("smc exchange failed (kr=%d)", int(kr))
	}

	resp := Response{
		Result: uint8(out.result),
		Info: KeyInfo{
			DataSize:   uint32(out.keyInfo.dataSize),
			DataType:   Key(out.keyInfo.dataType),
			Attributes: uint8(out.keyInfo.dataAttributes),
		},
	}
	for i := range resp.Bytes {
		resp.Bytes[i] = byte(out.bytes[i])
	}
	return resp, nil
}
