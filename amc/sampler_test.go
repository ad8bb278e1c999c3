package amc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_NonPositiveRuns_NoKernelCall(t *testing.T) {
	// GIVEN a sampler over a counting stub
	k := &stubKernel{}
	s := NewSampler(k)

	// WHEN averaging with runs <= 0
	for _, runs := range []int{0, -1} {
		_, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 5, Bits: 1000}, runs, Seed{})

		// THEN the caller fault surfaces before any kernel call
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
	assert.Zero(t, k.berCalls)
}

func TestAverage_InvalidModulation_NoKernelCall(t *testing.T) {
	k := &stubKernel{}
	s := NewSampler(k)

	_, err := s.Average(TrialRequest{Modulation: 8, SNRdB: 5, Bits: 1000}, 2, Seed{})

	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Zero(t, k.berCalls)
}

func TestAverage_MeanOfRuns(t *testing.T) {
	s := NewSampler(sequenceKernel(0.1, 0.2, 0.3))

	got, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 5, Bits: 1000}, 3, Seed{})

	require.NoError(t, err)
	assert.InDelta(t, 0.2, got, 1e-15)
}

func TestAverage_SentinelShortCircuits(t *testing.T) {
	// GIVEN a kernel whose second trial fails
	k := sequenceKernel(0.2, -1.0, 0.3)
	s := NewSampler(k)

	// WHEN averaging three runs
	_, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 5, Bits: 1000}, 3, Seed{})

	// THEN the first sentinel propagates as a typed error, never blended,
	// and the batch stops at the failing trial
	require.Error(t, err)
	var ke *KernelError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, -1.0, ke.Code)
	assert.Equal(t, 2, k.berCalls)
}

func TestAverage_ZeroStaysZero(t *testing.T) {
	// A kernel observing no errors reports exactly 0.0; the sampler must not
	// substitute a display floor.
	s := NewSampler(sequenceKernel(0.0))

	got, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 40, Bits: 100_000}, 4, Seed{})

	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestAverage_SeededCapabilityDetected(t *testing.T) {
	seeded := &seededStubKernel{}
	plain := &stubKernel{}

	assert.True(t, NewSampler(seeded).HasSeeded())
	assert.False(t, NewSampler(plain).HasSeeded())
}

func TestAverage_SeedDerivation_StridePerRun(t *testing.T) {
	// GIVEN a seed-capable kernel
	k := &seededStubKernel{}
	s := NewSampler(k)

	// WHEN averaging 3 seeded runs from base 42
	_, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 6, Bits: 1000}, 3, NewSeed(42))

	// THEN each run gets base + i*stride, not the same sub-sequence
	require.NoError(t, err)
	stride := seedStride // force runtime (wrapping) arithmetic below
	require.Len(t, k.seedsSeen, 3)
	assert.Equal(t, uint64(42), k.seedsSeen[0])
	assert.Equal(t, 42+stride, k.seedsSeen[1])
	assert.Equal(t, 42+2*stride, k.seedsSeen[2])
	assert.Zero(t, k.berCalls, "seeded path must not fall back to the unseeded trial")
}

func TestAverage_SeededAggregate_Reproducible(t *testing.T) {
	k := &seededStubKernel{}
	s := NewSampler(k)
	req := TrialRequest{Modulation: 4, SNRdB: 8, Bits: 50_000}

	a, err := s.Average(req, 5, NewSeed(7))
	require.NoError(t, err)
	b, err := s.Average(req, 5, NewSeed(7))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAverage_SeedIgnoredWithoutCapability(t *testing.T) {
	// A seed on a kernel without the seeded capability falls back to the
	// unseeded trial instead of failing.
	k := sequenceKernel(0.1)
	s := NewSampler(k)

	_, err := s.Average(TrialRequest{Modulation: 2, SNRdB: 5, Bits: 1000}, 2, NewSeed(42))

	require.NoError(t, err)
	assert.Equal(t, 2, k.berCalls)
}

func TestAverageSNR_MeanAndValidation(t *testing.T) {
	k := &stubKernel{snrFunc: func(trueSnrDB float64, _ int64) float64 { return trueSnrDB + 0.5 }}
	s := NewSampler(k)

	got, err := s.AverageSNR(10.0, 200, 4)
	require.NoError(t, err)
	assert.InDelta(t, 10.5, got, 1e-12)

	_, err = s.AverageSNR(10.0, 200, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = s.AverageSNR(10.0, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAverageSNR_SentinelShortCircuits(t *testing.T) {
	k := &stubKernel{snrFunc: func(float64, int64) float64 { return -999.0 }}
	s := NewSampler(k)

	_, err := s.AverageSNR(60.0, 200, 3)

	var ke *KernelError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "estimate_snr", ke.Op)
	assert.Equal(t, -999.0, ke.Code)
	assert.Equal(t, 1, k.snrCalls)
}
