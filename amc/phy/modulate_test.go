package phy

import (
	"math"
	"testing"
)

func TestModulate_Roundtrip_BPSK(t *testing.T) {
	// GIVEN a short BPSK bit pattern
	bits := []bool{false, true}

	// WHEN modulated and demodulated over a noiseless channel
	got := Demodulate(Modulate(bits, ModBPSK), ModBPSK)

	// THEN the bits survive unchanged
	if len(got) != len(bits) {
		t.Fatalf("roundtrip length: got %d, want %d", len(got), len(bits))
	}
	for i := range bits {
		if got[i] != bits[i] {
			t.Errorf("bit %d: got %v, want %v", i, got[i], bits[i])
		}
	}
}

func TestModulate_Roundtrip_AllOrders(t *testing.T) {
	// Exhaustive roundtrip over every symbol of every constellation.
	for _, order := range []int{ModBPSK, ModQPSK, Mod16QAM} {
		bps := BitsPerSymbol(order)
		for pattern := 0; pattern < 1<<bps; pattern++ {
			bits := make([]bool, bps)
			for i := 0; i < bps; i++ {
				bits[i] = pattern>>i&1 == 1
			}
			got := Demodulate(Modulate(bits, order), order)
			for i := range bits {
				if got[i] != bits[i] {
					t.Errorf("order %d pattern %d bit %d: got %v, want %v",
						order, pattern, i, got[i], bits[i])
				}
			}
		}
	}
}

func TestModulate_UnitEnergy(t *testing.T) {
	// Average symbol energy must be 1 for each constellation so that the
	// Es/N0 noise scaling is correct.
	cases := []struct {
		order int
		bits  []bool
	}{
		{ModQPSK, []bool{false, false, false, true, true, false, true, true}},
		{Mod16QAM, allBitPatterns(4)},
	}
	for _, tc := range cases {
		symbols := Modulate(tc.bits, tc.order)
		var energy float64
		for _, s := range symbols {
			energy += real(s)*real(s) + imag(s)*imag(s)
		}
		energy /= float64(len(symbols))
		if math.Abs(energy-1.0) > 1e-12 {
			t.Errorf("order %d: average symbol energy %v, want 1.0", tc.order, energy)
		}
	}
}

// allBitPatterns concatenates every n-bit pattern into one bit vector.
func allBitPatterns(n int) []bool {
	bits := make([]bool, 0, n<<n)
	for pattern := 0; pattern < 1<<n; pattern++ {
		for i := 0; i < n; i++ {
			bits = append(bits, pattern>>i&1 == 1)
		}
	}
	return bits
}

func TestModulate_TruncatesPartialSymbol(t *testing.T) {
	// 5 bits into QPSK yields 2 whole symbols; the 5th bit is dropped.
	symbols := Modulate(make([]bool, 5), ModQPSK)
	if len(symbols) != 2 {
		t.Errorf("got %d symbols, want 2", len(symbols))
	}
}

func TestModulate_InvalidOrder_ReturnsNil(t *testing.T) {
	if Modulate([]bool{true}, 8) != nil {
		t.Error("Modulate(order=8) should return nil")
	}
	if Demodulate([]complex128{1}, 3) != nil {
		t.Error("Demodulate(order=3) should return nil")
	}
}

func TestQAMGrayMapping(t *testing.T) {
	// The Gray lookup must keep adjacent amplitude levels one bit apart.
	wants := []struct {
		msb, lsb bool
		level    float64
	}{
		{false, false, 3.0},
		{false, true, 1.0},
		{true, true, -1.0},
		{true, false, -3.0},
	}
	for _, w := range wants {
		if got := qamLevel(w.msb, w.lsb); got != w.level {
			t.Errorf("qamLevel(%v,%v): got %v, want %v", w.msb, w.lsb, got, w.level)
		}
		msb, lsb := levelBits(w.level)
		if msb != w.msb || lsb != w.lsb {
			t.Errorf("levelBits(%v): got (%v,%v), want (%v,%v)", w.level, msb, lsb, w.msb, w.lsb)
		}
	}
}
