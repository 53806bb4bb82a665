package smc

import "fmt"

// MaxFans is the number of fan slots probed.
const MaxFans = 4

// Fan reports one fan's actual and configured RPM range.
type Fan struct {
	RPM    float32
	MinRPM float32
	MaxRPM float32
}

// Fans reads fan speeds from the F{i}Ac/F{i}Mn/F{i}Mx keys, stopping at the
// first slot without a positive actual RPM. Fan keys are not part of the
// probed caches: they are read rarely enough that the extra metadata
// round-trip does not matter.
func (c *Client) Fans() []Fan {
	var fans []Fan
	for i := 0; i < MaxFans; i++ {
		rpm, err := c.Read(KeyFromString(fmt.Sprintf("F%dAc", i)))
		if err != nil || rpm <= 0 {
			break
		}
		f := Fan{RPM: rpm}
		f.MinRPM, _ = c.Read(KeyFromString(fmt.Sprintf("F%dMn", i)))
		f.MaxRPM, _ = c.Read(KeyFromString(fmt.Sprintf("F%dMx", i)))
		fans = append(fans, f)
	}
	return fans
}
