package ioreport

// idleStateNames are the residency states excluded from the active window.
// The first state with any other name marks the start of the frequency
// table's index space.
var idleStateNames = map[string]bool{
	"IDLE": true,
	"OFF":  true,
	"DOWN": true,
}

// residencyMetrics derives a residency-weighted average frequency and an
// active-time percentage from one performance-state vector. Zero total
// residency or an empty table yields 0/0; there is no division by zero.
func residencyMetrics(states []State, table []uint32) (freqMHz, loadPct float64) {
	if len(table) == 0 || len(states) == 0 {
		return 0, 0
	}

	offset := 0
	for i, st := range states {
		if st.Name != "" && !idleStateNames[st.Name] {
			offset = i
			break
		}
	}

	var total, active int64
	var weighted float64
	for i, st := range states {
		total += st.Residency
		if i < offset {
			continue
		}
		active += st.Residency
		if idx := i - offset; idx < len(table) {
			weighted += float64(st.Residency) * float64(table[idx])
		}
	}

	if active <= 0 || total <= 0 {
		return 0, 0
	}
	return weighted / float64(active), float64(active) / float64(total) * 100
}
