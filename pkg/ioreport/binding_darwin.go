//go:build darwin

package ioreport

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <dlfcn.h>
#include <stdint.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>

// The reporting library ships with the OS but has no public headers; the
// symbols are resolved at runtime so machines without it degrade cleanly.
typedef struct __IOReportSubscription *IOReportSubscriptionRef;

typedef CFDictionaryRef (*iorCopyChannelsInGroupFn)(CFStringRef, CFStringRef, uint64_t, uint64_t, uint64_t);
typedef void (*iorMergeChannelsFn)(CFDictionaryRef, CFDictionaryRef, CFTypeRef);
typedef IOReportSubscriptionRef (*iorCreateSubscriptionFn)(void *, CFMutableDictionaryRef, CFMutableDictionaryRef *, uint64_t, CFTypeRef);
typedef CFDictionaryRef (*iorCreateSamplesFn)(IOReportSubscriptionRef, CFMutableDictionaryRef, CFTypeRef);
typedef CFDictionaryRef (*iorCreateSamplesDeltaFn)(CFDictionaryRef, CFDictionaryRef, CFTypeRef);
typedef CFStringRef (*iorChannelGetStringFn)(CFDictionaryRef);
typedef int64_t (*iorSimpleGetIntegerValueFn)(CFDictionaryRef, int32_t);
typedef int32_t (*iorStateGetCountFn)(CFDictionaryRef);
typedef CFStringRef (*iorStateGetNameForIndexFn)(CFDictionaryRef, int32_t);
typedef int64_t (*iorStateGetResidencyFn)(CFDictionaryRef, int32_t);

static iorCopyChannelsInGroupFn pCopyChannelsInGroup;
static iorMergeChannelsFn pMergeChannels;
static iorCreateSubscriptionFn pCreateSubscription;
static iorCreateSamplesFn pCreateSamples;
static iorCreateSamplesDeltaFn pCreateSamplesDelta;
static iorChannelGetStringFn pChannelGetGroup;
static iorChannelGetStringFn pChannelGetChannelName;
static iorChannelGetStringFn pChannelGetUnitLabel;
static iorSimpleGetIntegerValueFn pSimpleGetIntegerValue;
static iorStateGetCountFn pStateGetCount;
static iorStateGetNameForIndexFn pStateGetNameForIndex;
static iorStateGetResidencyFn pStateGetResidency;

static int iorLoad(void) {
	static void *handle;
	if (handle) {
		return 0;
	}
	handle = dlopen("/usr/lib/libIOReport.dylib", RTLD_LAZY);
	if (!handle) {
		return -1;
	}

	pCopyChannelsInGroup = (iorCopyChannelsInGroupFn)dlsym(handle, "IOReportCopyChannelsInGroup");
	pMergeChannels = (iorMergeChannelsFn)dlsym(handle, "IOReportMergeChannels");
	pCreateSubscription = (iorCreateSubscriptionFn)dlsym(handle, "IOReportCreateSubscription");
	pCreateSamples = (iorCreateSamplesFn)dlsym(handle, "IOReportCreateSamples");
	pCreateSamplesDelta = (iorCreateSamplesDeltaFn)dlsym(handle, "IOReportCreateSamplesDelta");
	pChannelGetGroup = (iorChannelGetStringFn)dlsym(handle, "IOReportChannelGetGroup");
	pChannelGetChannelName = (iorChannelGetStringFn)dlsym(handle, "IOReportChannelGetChannelName");
	pChannelGetUnitLabel = (iorChannelGetStringFn)dlsym(handle, "IOReportChannelGetUnitLabel");
	pSimpleGetIntegerValue = (iorSimpleGetIntegerValueFn)dlsym(handle, "IOReportSimpleGetIntegerValue");
	pStateGetCount = (iorStateGetCountFn)dlsym(handle, "IOReportStateGetCount");
	pStateGetNameForIndex = (iorStateGetNameForIndexFn)dlsym(handle, "IOReportStateGetNameForIndex");
	pStateGetResidency = (iorStateGetResidencyFn)dlsym(handle, "IOReportStateGetResidency");

	if (!pCopyChannelsInGroup || !pCreateSubscription || !pCreateSamples ||
	    !pCreateSamplesDelta || !pSimpleGetIntegerValue) {
		return -1;
	}
	return 0;
}

static CFMutableDictionaryRef iorChannelSet;
static IOReportSubscriptionRef iorSubscriptionRef;

// iorSubscribe merges the energy and graphics performance-state channel
// groups into one subscription. Returns 0 on success.
static int iorSubscribe(void) {
	if (iorSubscriptionRef) {
		return 0;
	}

	CFDictionaryRef energy = pCopyChannelsInGroup(CFSTR("Energy Model"), NULL, 0, 0, 0);
	CFDictionaryRef gpu = pCopyChannelsInGroup(CFSTR("GPU Stats"), CFSTR("GPU Performance States"), 0, 0, 0);
	if (!energy && !gpu) {
		return -1;
	}

	if (energy && gpu) {
		if (pMergeChannels) {
			pMergeChannels(energy, gpu, NULL);
		}
		CFRelease(gpu);
		iorChannelSet = CFDictionaryCreateMutableCopy(kCFAllocatorDefault, CFDictionaryGetCount(energy), energy);
		CFRelease(energy);
	} else if (energy) {
		iorChannelSet = CFDictionaryCreateMutableCopy(kCFAllocatorDefault, CFDictionaryGetCount(energy), energy);
		CFRelease(energy);
	} else {
		iorChannelSet = CFDictionaryCreateMutableCopy(kCFAllocatorDefault, CFDictionaryGetCount(gpu), gpu);
		CFRelease(gpu);
	}
	if (!iorChannelSet) {
		return -1;
	}

	CFMutableDictionaryRef result = NULL;
	iorSubscriptionRef = pCreateSubscription(NULL, iorChannelSet, &result, 0, NULL);
	if (!iorSubscriptionRef) {
		CFRelease(iorChannelSet);
		iorChannelSet = NULL;
		return -1;
	}
	return 0;
}

static CFDictionaryRef iorSample(void) {
	return pCreateSamples(iorSubscriptionRef, iorChannelSet, NULL);
}

static CFDictionaryRef iorDelta(CFDictionaryRef prev, CFDictionaryRef cur) {
	return pCreateSamplesDelta(prev, cur, NULL);
}

static CFArrayRef iorDeltaChannels(CFDictionaryRef delta) {
	return (CFArrayRef)CFDictionaryGetValue(delta, CFSTR("IOReportChannels"));
}

static int copyCFString(CFStringRef s, char *buf, int len) {
	if (!s) {
		buf[0] = 0;
		return 0;
	}
	return CFStringGetCString(s, buf, len, kCFStringEncodingUTF8) ? 1 : 0;
}

// iorChannelInfo extracts one delta channel's identity and simple value.
static CFDictionaryRef iorChannelAt(CFArrayRef channels, CFIndex i,
		char *group, int groupLen, char *name, int nameLen, char *unit, int unitLen) {
	CFDictionaryRef ch = (CFDictionaryRef)CFArrayGetValueAtIndex(channels, i);
	if (!ch) {
		return NULL;
	}
	copyCFString(pChannelGetGroup ? pChannelGetGroup(ch) : NULL, group, groupLen);
	copyCFString(pChannelGetChannelName ? pChannelGetChannelName(ch) : NULL, name, nameLen);
	copyCFString(pChannelGetUnitLabel ? pChannelGetUnitLabel(ch) : NULL, unit, unitLen);
	return ch;
}

static int64_t iorSimpleValue(CFDictionaryRef ch) {
	return pSimpleGetIntegerValue(ch, 0);
}

static int32_t iorStateCount(CFDictionaryRef ch) {
	return pStateGetCount ? pStateGetCount(ch) : 0;
}

static int iorStateName(CFDictionaryRef ch, int32_t i, char *buf, int len) {
	if (!pStateGetNameForIndex) {
		buf[0] = 0;
		return 0;
	}
	return copyCFString(pStateGetNameForIndex(ch, i), buf, len);
}

static int64_t iorStateResidency(CFDictionaryRef ch, int32_t i) {
	return pStateGetResidency ? pStateGetResidency(ch, i) : 0;
}

// pmgrVoltageStates copies the pmgr registry entry's voltage-states9
// property (the graphics frequency/voltage table) into buf, returning the
// byte count or 0.
static int pmgrVoltageStates(uint8_t *buf, int bufLen) {
	io_iterator_t iter;
	if (IOServiceGetMatchingServices(0, IOServiceMatching("AppleARMIODevice"), &iter) != KERN_SUCCESS) {
		return 0;
	}

	int n = 0;
	io_object_t device;
	while ((device = IOIteratorNext(iter)) != 0) {
		char name[128] = {0};
		IORegistryEntryGetName(device, name);
		if (strcmp(name, "pmgr") == 0) {
			CFMutableDictionaryRef props = NULL;
			if (IORegistryEntryCreateCFProperties(device, &props, kCFAllocatorDefault, 0) == KERN_SUCCESS && props) {
				CFDataRef data = (CFDataRef)CFDictionaryGetValue(props, CFSTR("voltage-states9"));
				if (data) {
					CFIndex len = CFDataGetLength(data);
					if (len > bufLen) {
						len = bufLen;
					}
					memcpy(buf, CFDataGetBytePtr(data), len);
					n = (int)len;
				}
				CFRelease(props);
			}
		}
		IOObjectRelease(device);
		if (n > 0) {
			break;
		}
	}
	IOObjectRelease(iter);
	return n;
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// cfSample wraps a retained samples dictionary.
type cfSample struct {
	ref C.CFDictionaryRef
}

// systemSubscription drives the dynamically loaded reporting library.
// One subscription per process.
type systemSubscription struct {
	mu sync.Mutex
}

var (
	subOnce sync.Once
	subErr  error
	sub     *systemSubscription
)

func openSystemSubscription() (Subscription, error) {
	subOnce.Do(func() {
		if C.iorLoad() != 0 {
			subErr = fmt.Errorf("%w: library not loadable", ErrUnavailable)
			return
		}
		if C.iorSubscribe() != 0 {
			subErr = fmt.Errorf("%w: no energy or graphics channels", ErrUnavailable)
			return
		}
		sub = &systemSubscription{}
	})
	if subErr != nil {
		return nil, subErr
	}
	return sub, nil
}

func (s *systemSubscription) Sample() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := C.iorSample()
	if ref == nil {
		return nil, fmt.Errorf("ioreport: sample capture failed")
	}
	return &cfSample{ref: ref}, nil
}

func (s *systemSubscription) Delta(prev, cur Sample) ([]Channel, error) {
	p, ok := prev.(*cfSample)
	if !ok {
		return nil, fmt.Errorf("ioreport: bad previous sample")
	}
	c, ok := cur.(*cfSample)
	if !ok {
		return nil, fmt.Errorf("ioreport: bad current sample")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delta := C.iorDelta(p.ref, c.ref)
	if delta == nil {
		return nil, fmt.Errorf("ioreport: delta computation failed")
	}
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(delta)))

	arr := C.iorDeltaChannels(delta)
	if arr == nil {
		return nil, nil
	}

	count := int(C.CFArrayGetCount(arr))
	channels := make([]Channel, 0, count)

	var group, name [64]C.char
	var unit [16]C.char
	for i := 0; i < count; i++ {
		ref := C.iorChannelAt(arr, C.CFIndex(i),
			&group[0], C.int(len(group)),
			&name[0], C.int(len(name)),
			&unit[0], C.int(len(unit)))
		if ref == nil {
			continue
		}

		ch := Channel{
			Group: C.GoString(&group[0]),
			Name:  C.GoString(&name[0]),
			Unit:  C.GoString(&unit[0]),
		}

		if stateCount := int(C.iorStateCount(ref)); stateCount > 0 {
			ch.Kind = KindResidency
			ch.States = make([]State, 0, stateCount)
			var stateName [64]C.char
			for j := 0; j < stateCount; j++ {
				C.iorStateName(ref, C.int32_t(j), &stateName[0], C.int(len(stateName)))
				ch.States = append(ch.States, State{
					Name:      C.GoString(&stateName[0]),
					Residency: int64(C.iorStateResidency(ref, C.int32_t(j))),
				})
			}
		} else {
			ch.Kind = KindEnergy
			ch.Energy = int64(C.iorSimpleValue(ref))
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func (s *systemSubscription) Release(sample Sample) {
	if cs, ok := sample.(*cfSample); ok && cs.ref != nil {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(cs.ref)))
		cs.ref = nil
	}
}

// loadFrequencyTable reads the graphics frequency table from the platform
// registry. Missing registry data just disables frequency derivation.
func loadFrequencyTable() []uint32 {
	var buf [maxTableStates * 8]byte
	n := int(C.pmgrVoltageStates((*C.uint8_t)(unsafe.Pointer(&buf[0])), C.int(len(buf))))
	if n <= 0 {
		return nil
	}
	return ParseVoltageStates(buf[:n])
}
