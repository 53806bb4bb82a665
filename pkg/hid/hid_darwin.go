//go:build darwin

package hid

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>

// Private HID event system interfaces; not in the public headers.
typedef struct __IOHIDEventSystemClient *IOHIDEventSystemClientRef;
typedef struct __IOHIDServiceClient *IOHIDServiceClientRef;
typedef struct __IOHIDEvent *IOHIDEventRef;

extern IOHIDEventSystemClientRef IOHIDEventSystemClientCreate(CFAllocatorRef);
extern void IOHIDEventSystemClientSetMatching(IOHIDEventSystemClientRef, CFDictionaryRef);
extern CFArrayRef IOHIDEventSystemClientCopyServices(IOHIDEventSystemClientRef);
extern CFTypeRef IOHIDServiceClientCopyProperty(IOHIDServiceClientRef, CFStringRef);
extern IOHIDEventRef IOHIDServiceClientCopyEvent(IOHIDServiceClientRef, int64_t, int32_t, int64_t);
extern double IOHIDEventGetFloatValue(IOHIDEventRef, int32_t);

enum {
	appleVendorPage       = 0xff00,
	temperatureSensor     = 0x0005,
	eventTypeTemperature  = 15,
	temperatureEventField = 15 << 16,
};

static IOHIDEventSystemClientRef newTemperatureClient(void) {
	IOHIDEventSystemClientRef client = IOHIDEventSystemClientCreate(kCFAllocatorDefault);
	if (!client) {
		return NULL;
	}

	int page = appleVendorPage;
	int usage = temperatureSensor;
	CFNumberRef pageNum = CFNumberCreate(kCFAllocatorDefault, kCFNumberIntType, &page);
	CFNumberRef usageNum = CFNumberCreate(kCFAllocatorDefault, kCFNumberIntType, &usage);

	CFStringRef keys[] = { CFSTR("PrimaryUsagePage"), CFSTR("PrimaryUsage") };
	CFTypeRef vals[] = { pageNum, usageNum };
	CFDictionaryRef match = CFDictionaryCreate(kCFAllocatorDefault,
		(const void **)keys, (const void **)vals, 2,
		&kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);

	IOHIDEventSystemClientSetMatching(client, match);
	CFRelease(match);
	CFRelease(pageNum);
	CFRelease(usageNum);
	return client;
}

static CFIndex serviceCount(CFArrayRef services) {
	return CFArrayGetCount(services);
}

static int serviceAt(CFArrayRef services, CFIndex i, char *nameBuf, int nameLen, double *temp) {
	IOHIDServiceClientRef service = (IOHIDServiceClientRef)CFArrayGetValueAtIndex(services, i);

	CFStringRef product = IOHIDServiceClientCopyProperty(service, CFSTR("Product"));
	if (!product) {
		return 0;
	}
	Boolean ok = CFStringGetCString(product, nameBuf, nameLen, kCFStringEncodingUTF8);
	CFRelease(product);
	if (!ok) {
		return 0;
	}

	IOHIDEventRef event = IOHIDServiceClientCopyEvent(service, eventTypeTemperature, 0, 0);
	if (!event) {
		return 0;
	}
	*temp = IOHIDEventGetFloatValue(event, temperatureEventField);
	CFRelease(event);
	return 1;
}
*/
import "C"

import "unsafe"

// eventEnumerator reads temperature services through the HID event system.
// A fresh client is created per enumeration; every CF object is released
// before return.
type eventEnumerator struct{}

func systemEnumerator() (Enumerator, error) {
	// Creation is retried per call; a nil client here just reports the
	// permanent absence of the event system for this process.
	client := C.newTemperatureClient()
	if client == nil {
		return nil, ErrUnavailable
	}
	C.CFRelease(C.CFTypeRef(unsafe.Pointer(client)))
	return eventEnumerator{}, nil
}

func (eventEnumerator) Services() ([]Service, error) {
	client := C.newTemperatureClient()
	if client == nil {
		return nil, ErrUnavailable
	}
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(client)))

	services := C.IOHIDEventSystemClientCopyServices(client)
	if services == nil {
		return nil, nil
	}
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(services)))

	count := int(C.serviceCount(services))
	out := make([]Service, 0, count)

	var nameBuf [128]C.char
	for i := 0; i < count; i++ {
		var temp C.double
		if C.serviceAt(services, C.CFIndex(i), &nameBuf[0], C.int(len(nameBuf)), &temp) == 0 {
			continue
		}
		out = append(out, Service{
			Name:        C.GoString(&nameBuf[0]),
			Temperature: float32(temp),
		})
	}
	return out, nil
}
