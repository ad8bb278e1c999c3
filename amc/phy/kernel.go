package phy

import (
	"math"
	"math/rand"
	"time"
)

// Boundary sentinel values. The orchestration layer converts these into
// typed errors; nothing above the sampler sees raw sentinels.
const (
	// SentinelBER signals an unsupported modulation order or an out-of-envelope
	// parameter on a BER trial.
	SentinelBER = -1.0
	// SentinelSNR signals a non-positive pilot count or an out-of-envelope
	// input SNR on an SNR estimation trial.
	SentinelSNR = -999.0
)

// Parameter envelope enforced on every trial.
const (
	MaxTrialBits = 100_000_000
	MaxPilots    = 1_000_000
	MinSNRdB     = -50.0
	MaxSNRdB     = 50.0
)

// Kernel is the pure-Go numeric core: modulation, AWGN injection, pilot-based
// SNR estimation and the convolutional coding path. It holds no state; every
// trial owns its RNG, so concurrent independent calls are safe.
type Kernel struct{}

// New returns a ready Kernel.
func New() *Kernel {
	return &Kernel{}
}

func dbToLinear(db float64) float64 {
	return math.Pow(10.0, db/10.0)
}

func linearToDB(lin float64) float64 {
	return 10.0 * math.Log10(lin)
}

// snrInEnvelope reports whether snrDB is inside the simulated channel envelope.
func snrInEnvelope(snrDB float64) bool {
	return snrDB >= MinSNRdB && snrDB <= MaxSNRdB
}

// freshSource returns a time-seeded RNG for unseeded trials.
func freshSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randomBits fills a fresh bit vector from rng.
func randomBits(n int64, rng *rand.Rand) []bool {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = rng.Int63()&1 == 1
	}
	return bits
}

// addAWGN adds complex Gaussian noise with per-dimension variance n0/2.
func addAWGN(symbols []complex128, esnoLin float64, rng *rand.Rand) {
	sigma := math.Sqrt(1.0 / esnoLin / 2.0)
	for i := range symbols {
		symbols[i] += complex(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma)
	}
}

// berTrial runs one uncoded Monte Carlo trial with the given RNG.
func berTrial(order int, snrDB float64, bits int64, rng *rand.Rand) float64 {
	if !ValidOrder(order) {
		return SentinelBER
	}
	if !snrInEnvelope(snrDB) {
		return SentinelBER
	}
	bps := int64(BitsPerSymbol(order))
	bits -= bits % bps // truncate to a whole number of symbols
	if bits <= 0 {
		return 0.0
	}
	if bits > MaxTrialBits {
		return SentinelBER
	}

	tx := randomBits(bits, rng)
	symbols := Modulate(tx, order)

	ebnoLin := dbToLinear(snrDB)
	esnoLin := float64(bps) * ebnoLin
	addAWGN(symbols, esnoLin, rng)

	rx := Demodulate(symbols, order)
	var errors int64
	for i := range tx {
		if tx[i] != rx[i] {
			errors++
		}
	}
	return float64(errors) / float64(bits)
}

// UncodedBER runs one uncoded BER trial with a non-deterministic RNG.
// Returns SentinelBER for unsupported order, out-of-envelope SNR or bits,
// and 0.0 for a zero (post-truncation) bit count.
func (k *Kernel) UncodedBER(order int, snrDB float64, bits int64) float64 {
	return berTrial(order, snrDB, bits, freshSource())
}

// SeededBER is the deterministic variant of UncodedBER. The same
// (order, snrDB, bits, seed) tuple always reproduces the same BER.
func (k *Kernel) SeededBER(order int, snrDB float64, bits int64, seed uint64) float64 {
	return berTrial(order, snrDB, bits, rand.New(rand.NewSource(int64(seed))))
}

// EstimateSNR transmits unit pilots through the AWGN channel and inverts the
// measured noise variance into an Eb/N0 estimate in dB. Returns SentinelSNR
// for a non-positive or oversized pilot count or an out-of-envelope true SNR.
func (k *Kernel) EstimateSNR(trueSnrDB float64, pilots int64) float64 {
	if pilots <= 0 || pilots > MaxPilots {
		return SentinelSNR
	}
	if !snrInEnvelope(trueSnrDB) {
		return SentinelSNR
	}

	rng := freshSource()
	rx := make([]complex128, pilots)
	for i := range rx {
		rx[i] = complex(1.0, 0.0)
	}
	esnoLin := dbToLinear(trueSnrDB) // BPSK pilots: 1 bit/symbol
	addAWGN(rx, esnoLin, rng)

	var noiseVar float64
	for _, s := range rx {
		d := s - complex(1.0, 0.0)
		noiseVar += real(d)*real(d) + imag(d)*imag(d)
	}
	noiseVar /= float64(pilots)
	return linearToDB(1.0 / noiseVar)
}
