package amc

// Choice is the AMC decision for one channel-quality estimate.
type Choice int

const (
	// ChoiceNone: channel too poor for any supported scheme at the target rate.
	ChoiceNone Choice = iota
	// ChoiceQPSK: channel supports QPSK but not 16-QAM.
	ChoiceQPSK
	// Choice16QAM: channel supports 16-QAM.
	Choice16QAM
)

func (c Choice) String() string {
	switch c {
	case ChoiceQPSK:
		return "QPSK"
	case Choice16QAM:
		return "16QAM"
	default:
		return "NONE"
	}
}

// Order returns the modulation order for a choice, 0 for ChoiceNone.
func (c Choice) Order() int {
	switch c {
	case ChoiceQPSK:
		return 4
	case Choice16QAM:
		return 16
	default:
		return 0
	}
}

// Decide maps an estimated SNR to a modulation choice given the two
// calibrated thresholds. Intervals are half-open with boundary values
// belonging to the higher tier: an estimate exactly at a threshold selects
// that threshold's scheme.
//
// Pure and stateless: no hysteresis, no history. A noisy estimate near a
// threshold can flip the decision between adjacent calls; that instability
// is a property of the design, not hidden here.
func Decide(estSnrDB, thresholdQPSKdB, threshold16QAMdB float64) Choice {
	switch {
	case estSnrDB < thresholdQPSKdB:
		return ChoiceNone
	case estSnrDB < threshold16QAMdB:
		return ChoiceQPSK
	default:
		return Choice16QAM
	}
}

// Decide applies the pair's thresholds to an SNR estimate.
func (t ThresholdPair) Decide(estSnrDB float64) Choice {
	return Decide(estSnrDB, t.QPSKdB, t.QAM16dB)
}
