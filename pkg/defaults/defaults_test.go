package defaults

import (
	"testing"
	"time"
)

func TestSamplingDefaults(t *testing.T) {
	if SampleInterval <= 0 {
		t.Error("SampleInterval must be positive")
	}
	if CycleTimeout <= SampleInterval {
		t.Error("CycleTimeout should exceed the sample interval")
	}
	if SerialBaud != 115200 {
		t.Errorf("SerialBaud = %d, want 115200", SerialBaud)
	}
}

func TestServerTimeoutOrdering(t *testing.T) {
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Error("header timeout should be shorter than full read timeout")
	}
	if ServerShutdownTimeout < time.Second {
		t.Error("shutdown timeout unreasonably short")
	}
}
