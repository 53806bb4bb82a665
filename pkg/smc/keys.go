package smc

// Candidate temperature keys per domain. The lists are hand-maintained and
// intentionally broad: probing keeps only the keys the running machine
// actually exposes.
var (
	// Processor die sensors across chip generations: Tp* performance
	// cluster, Te* efficiency cluster, Tc* per-core.
	cpuCandidateKeys = []string{
		"Tp01", "Tp02", "Tp03", "Tp04", "Tp05", "Tp06", "Tp07", "Tp08",
		"Tp09", "Tp0A", "Tp0B", "Tp0C", "Tp0D", "Tp0E", "Tp0F", "Tp0G",
		"Te01", "Te02", "Te03", "Te04", "Te05", "Te06", "Te07", "Te08",
		"Tc0c", "Tc1c", "Tc2c", "Tc3c",
	}

	gpuCandidateKeys = []string{
		"Tg0f", "Tg0j", "Tg0D", "Tg0d", "Tg05", "Tg0P", "Tg0p",
	}

	// Platform controller hub, case sensors, and the wireless module,
	// which usually sits on the board.
	boardCandidateKeys = []string{
		"Tm0P", "Tm1P", "Tm2P",
		"Ts0P", "Ts1P", "Ts2P",
		"TM0P", "TM1P",
		"Tw0P",
	}
)
