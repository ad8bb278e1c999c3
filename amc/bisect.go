package amc

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ThresholdConfig parameterizes the bisection threshold search.
type ThresholdConfig struct {
	TargetBER float64 // error rate the threshold must achieve, in (0, 0.5]
	Bits      int64   // bits per probe trial
	Runs      int     // trials averaged per probe
	LowDB     float64 // lower search bound (dB)
	HighDB    float64 // upper search bound (dB)
	Tolerance float64 // terminate when HighDB-LowDB <= Tolerance
	Seed      Seed    // optional; makes the search reproducible
}

// DefaultThresholdConfig returns the conventional search setup: target BER
// 1e-5 over [0, 30] dB with 0.1 dB resolution, two 1M-bit probes per step.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		TargetBER: 1e-5,
		Bits:      1_000_000,
		Runs:      2,
		LowDB:     0.0,
		HighDB:    30.0,
		Tolerance: 0.1,
	}
}

// ValidateThresholdConfig returns an error if the config is malformed.
func ValidateThresholdConfig(cfg ThresholdConfig) error {
	if cfg.TargetBER <= 0 || cfg.TargetBER > 0.5 {
		return fmt.Errorf("%w: target BER must be in (0, 0.5], got %g", ErrInvalidParameter, cfg.TargetBER)
	}
	if cfg.Bits <= 0 {
		return fmt.Errorf("%w: probe bit count must be positive, got %d", ErrInvalidParameter, cfg.Bits)
	}
	if cfg.Runs <= 0 {
		return fmt.Errorf("%w: probe run count must be positive, got %d", ErrInvalidParameter, cfg.Runs)
	}
	if cfg.HighDB < cfg.LowDB {
		return fmt.Errorf("%w: search bound high %g dB below low %g dB", ErrInvalidParameter, cfg.HighDB, cfg.LowDB)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidParameter, cfg.Tolerance)
	}
	return nil
}

// FindThreshold bisects the SNR axis for the minimum SNR at which `order`
// achieves cfg.TargetBER, using the Sampler as a noisy oracle.
//
// BER is assumed monotone non-increasing in SNR. Sampling noise can violate
// that near the target rate, making the result unstable run-to-run; this is
// an accepted approximation, not repaired here. The returned value is the
// final upper bound: the tightest known SNR satisfying the target, biased
// conservative rather than optimistic.
//
// Cost: O(log2((high-low)/tolerance)) probes of Runs×Bits bits each.
func (s *Sampler) FindThreshold(order int, cfg ThresholdConfig) (float64, error) {
	if err := ValidateThresholdConfig(cfg); err != nil {
		return 0, err
	}

	low, high := cfg.LowDB, cfg.HighDB
	for high-low > cfg.Tolerance {
		mid := 0.5 * (low + high)
		ber, err := s.Average(TrialRequest{Modulation: order, SNRdB: mid, Bits: cfg.Bits}, cfg.Runs, cfg.Seed)
		if err != nil {
			return 0, fmt.Errorf("bisection probe at %.3f dB: %w", mid, err)
		}
		logrus.Debugf("bisect %s: [%.3f, %.3f] dB, probe %.3f dB -> BER %.3e", OrderName(order), low, high, mid, ber)
		if ber <= cfg.TargetBER {
			high = mid
		} else {
			low = mid
		}
	}
	return high, nil
}

// ThresholdPair holds the two calibrated AMC switching points.
// SNR below QPSKdB supports no transmission at the target rate; at or above
// QAM16dB, 16-QAM does. QPSKdB <= QAM16dB is expected but not enforced;
// it can be violated by sampling noise.
type ThresholdPair struct {
	QPSKdB  float64
	QAM16dB float64
}

// FindThresholdPair calibrates both AMC thresholds with the same probe setup.
func (s *Sampler) FindThresholdPair(cfg ThresholdConfig) (ThresholdPair, error) {
	qpsk, err := s.FindThreshold(4, cfg)
	if err != nil {
		return ThresholdPair{}, fmt.Errorf("QPSK threshold: %w", err)
	}
	qam16, err := s.FindThreshold(16, cfg)
	if err != nil {
		return ThresholdPair{}, fmt.Errorf("16QAM threshold: %w", err)
	}
	return ThresholdPair{QPSKdB: qpsk, QAM16dB: qam16}, nil
}
