package amc

// Kernel is the boundary contract with the numeric core. One call runs one
// trial and returns one scalar; retrying and averaging belong to the caller.
//
// Errors travel in-band as sentinel values: BER trials return a negative
// value (-1.0 by convention) for unsupported modulation orders or
// out-of-envelope parameters, and SNR estimation returns -999.0 for a
// non-positive pilot count or out-of-envelope input SNR. The Sampler converts
// sentinels into typed errors; raw sentinel floats never escape this package's
// public API.
//
// Implementations must be safe for concurrent independent calls and must not
// allocate per-call state that outlives the call.
type Kernel interface {
	// UncodedBER runs one uncoded Monte Carlo BER trial.
	// A zero bit count yields 0.0, not an error.
	UncodedBER(order int, snrDB float64, bits int64) float64

	// CodedBER runs one BER trial with convolutional coding (K=7, rate 1/2)
	// when enabled. enabled=false reproduces the uncoded trial; non-BPSK
	// orders fall back to the uncoded value.
	CodedBER(order int, snrDB float64, bits int64, enabled bool) float64

	// EstimateSNR runs one pilot-based SNR estimation trial, returning dB.
	EstimateSNR(trueSnrDB float64, pilots int64) float64

	// CodingSelfTest verifies the coding path once at startup.
	// Returns 0 on success, a nonzero diagnostic code otherwise.
	CodingSelfTest() int

	// CodingGainDB returns the approximate coding gain in dB. Informational.
	CodingGainDB() float64
}

// SeededKernel is the optional deterministic-trial capability. Presence is
// detected by type assertion, never assumed: older or remote kernels may not
// support it.
type SeededKernel interface {
	Kernel

	// SeededBER is UncodedBER with an explicit 64-bit seed. The same inputs
	// must reproduce the same BER bit-for-bit.
	SeededBER(order int, snrDB float64, bits int64, seed uint64) float64
}
