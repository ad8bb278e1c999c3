package phy

// Supported modulation orders.
const (
	ModBPSK  = 2
	ModQPSK  = 4
	Mod16QAM = 16
)

// Unit-energy normalization factors.
const (
	scaleQPSK  = 0.7071067811865476  // 1/sqrt(2)
	scale16QAM = 0.31622776601683794 // 1/sqrt(10)
)

// qamLevels is the 4-PAM amplitude lookup for the 16-QAM Gray mapping,
// indexed by the bit pair (msb<<1)|lsb. Adjacent amplitude levels differ by
// exactly one bit:
//
//	amplitude: +3   +1   -1   -3
//	bits:      00   01   11   10
//
// Stored in index order (00, 01, 10, 11), not amplitude order, which is why
// -3 appears before -1.
var qamLevels = [4]float64{3.0, 1.0, -3.0, -1.0}

// ValidOrder reports whether order is a supported modulation order.
func ValidOrder(order int) bool {
	return order == ModBPSK || order == ModQPSK || order == Mod16QAM
}

// BitsPerSymbol returns log2(order) for supported orders, 0 otherwise.
func BitsPerSymbol(order int) int {
	switch order {
	case ModBPSK:
		return 1
	case ModQPSK:
		return 2
	case Mod16QAM:
		return 4
	}
	return 0
}

func qamLevel(msb, lsb bool) float64 {
	idx := 0
	if msb {
		idx |= 2
	}
	if lsb {
		idx |= 1
	}
	return qamLevels[idx]
}

// sliceLevel quantizes a received 4-PAM amplitude to the nearest constellation level.
func sliceLevel(v float64) float64 {
	switch {
	case v > 2.0:
		return 3.0
	case v > 0.0:
		return 1.0
	case v > -2.0:
		return -1.0
	default:
		return -3.0
	}
}

// levelBits is the inverse of qamLevel.
func levelBits(level float64) (msb, lsb bool) {
	switch int(level) {
	case 3:
		return false, false
	case 1:
		return false, true
	case -1:
		return true, true
	default: // -3
		return true, false
	}
}

// Modulate maps bits onto unit-energy constellation symbols.
// Trailing bits that do not fill a whole symbol are dropped.
// Returns nil for unsupported orders.
func Modulate(bits []bool, order int) []complex128 {
	if !ValidOrder(order) {
		return nil
	}
	bps := BitsPerSymbol(order)
	numSym := len(bits) / bps
	symbols := make([]complex128, numSym)

	switch order {
	case ModBPSK:
		for i := 0; i < numSym; i++ {
			if bits[i] {
				symbols[i] = complex(-1.0, 0.0)
			} else {
				symbols[i] = complex(1.0, 0.0)
			}
		}
	case ModQPSK:
		for i := 0; i < numSym; i++ {
			re, im := 1.0, 1.0
			if bits[2*i] {
				re = -1.0
			}
			if bits[2*i+1] {
				im = -1.0
			}
			symbols[i] = complex(re*scaleQPSK, im*scaleQPSK)
		}
	case Mod16QAM:
		// Bit pairs (b0,b2) select the I level, (b1,b3) the Q level.
		for i := 0; i < numSym; i++ {
			re := qamLevel(bits[4*i], bits[4*i+2])
			im := qamLevel(bits[4*i+1], bits[4*i+3])
			symbols[i] = complex(re*scale16QAM, im*scale16QAM)
		}
	}
	return symbols
}

// Demodulate recovers bits from received symbols with hard decisions.
// Returns nil for unsupported orders.
func Demodulate(symbols []complex128, order int) []bool {
	if !ValidOrder(order) {
		return nil
	}
	bps := BitsPerSymbol(order)
	bits := make([]bool, len(symbols)*bps)

	switch order {
	case ModBPSK:
		for i, s := range symbols {
			bits[i] = real(s) < 0.0
		}
	case ModQPSK:
		for i, s := range symbols {
			bits[2*i] = real(s) < 0.0
			bits[2*i+1] = imag(s) < 0.0
		}
	case Mod16QAM:
		for i, s := range symbols {
			reMSB, reLSB := levelBits(sliceLevel(real(s) / scale16QAM))
			imMSB, imLSB := levelBits(sliceLevel(imag(s) / scale16QAM))
			bits[4*i] = reMSB
			bits[4*i+1] = imMSB
			bits[4*i+2] = reLSB
			bits[4*i+3] = imLSB
		}
	}
	return bits
}
