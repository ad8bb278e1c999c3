package amc

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Sampler reduces repeated kernel trials for a fixed parameter point into a
// single expected-value estimate. It is the sentinel boundary: any in-band
// kernel error short-circuits the batch and surfaces as a *KernelError
// instead of being blended into a misleading finite average.
type Sampler struct {
	kernel Kernel
	seeded SeededKernel // nil when the kernel lacks the seeded capability
}

// NewSampler wraps a kernel, detecting the optional seeded capability.
func NewSampler(k Kernel) *Sampler {
	s := &Sampler{kernel: k}
	if sk, ok := k.(SeededKernel); ok {
		s.seeded = sk
	}
	return s
}

// Kernel returns the wrapped kernel.
func (s *Sampler) Kernel() Kernel {
	return s.kernel
}

// HasSeeded reports whether the wrapped kernel supports deterministic trials.
func (s *Sampler) HasSeeded() bool {
	return s.seeded != nil
}

// Average runs `runs` trials of req and returns their arithmetic mean.
//
// With a valid seed and a seed-capable kernel, run i uses seed.ForRun(i), so
// the same (seed, runs) pair reproduces the aggregate exactly. The coding
// path ignores the seed (the boundary contract has no seeded coded trial).
//
// The first sentinel observed aborts the batch: averaging an error code with
// valid data is an invalid operation, and fast propagation beats masking.
// A kernel reporting exactly zero errors stays 0.0 here; display floors are
// a presentation concern (see amc/report).
func (s *Sampler) Average(req TrialRequest, runs int, seed Seed) (float64, error) {
	if runs <= 0 {
		return 0, fmt.Errorf("%w: run count must be positive, got %d", ErrInvalidParameter, runs)
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	vals := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		var v float64
		switch {
		case req.Coding:
			v = s.kernel.CodedBER(req.Modulation, req.SNRdB, req.Bits, true)
		case seed.Valid && s.seeded != nil:
			v = s.seeded.SeededBER(req.Modulation, req.SNRdB, req.Bits, seed.ForRun(i))
		default:
			v = s.kernel.UncodedBER(req.Modulation, req.SNRdB, req.Bits)
		}
		if berSentinel(v) {
			op := "uncoded_ber"
			if req.Coding {
				op = "coded_ber"
			}
			return 0, &KernelError{Op: op, Code: v, Order: req.Modulation, SNRdB: req.SNRdB}
		}
		vals = append(vals, v)
	}
	return stat.Mean(vals, nil), nil
}

// AverageSNR averages `runs` pilot-based SNR estimation trials at one true
// SNR. The -999.0 sentinel short-circuits like a BER sentinel.
func (s *Sampler) AverageSNR(trueSnrDB float64, pilots int64, runs int) (float64, error) {
	if runs <= 0 {
		return 0, fmt.Errorf("%w: run count must be positive, got %d", ErrInvalidParameter, runs)
	}
	if pilots <= 0 {
		return 0, fmt.Errorf("%w: pilot count must be positive, got %d", ErrInvalidParameter, pilots)
	}

	vals := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		v := s.kernel.EstimateSNR(trueSnrDB, pilots)
		if snrSentinel(v) {
			return 0, &KernelError{Op: "estimate_snr", Code: v, SNRdB: trueSnrDB}
		}
		vals = append(vals, v)
	}
	return stat.Mean(vals, nil), nil
}
