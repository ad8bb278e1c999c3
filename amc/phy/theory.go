package phy

import "math"

// QFunc is the Gaussian tail probability Q(x).
func QFunc(x float64) float64 {
	return 0.5 * math.Erfc(x/math.Sqrt2)
}

// TheoreticalBER returns the closed-form uncoded BER for the given modulation
// order at ebnoDB. BPSK and QPSK share the same per-bit error probability;
// the 16-QAM expression matches the Gray-mapped simulation. Returns NaN for
// unsupported orders.
func TheoreticalBER(order int, ebnoDB float64) float64 {
	ebnoLin := dbToLinear(ebnoDB)
	switch order {
	case ModBPSK, ModQPSK:
		return QFunc(math.Sqrt(2.0 * ebnoLin))
	case Mod16QAM:
		return 0.375 * math.Erfc(math.Sqrt(0.4*ebnoLin))
	}
	return math.NaN()
}
