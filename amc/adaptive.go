package amc

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AdaptiveConfig parameterizes the adaptive trial-size controller.
type AdaptiveConfig struct {
	MinErrorEvents int64   // stop once this many estimated errors accumulate
	MaxBits        int64   // hard budget of simulated bits
	InitialGuess   int64   // bit count for the first step
	GrowthFast     float64 // multiplicative growth while a step sees < LowEventCount errors
	GrowthSlow     float64 // multiplicative growth once errors appear
	LowEventCount  int64   // step error count below which a step is low-confidence
	Coding         bool    // measure through the coded path; the seed is ignored
	Seed           Seed    // optional; per-step seeds derived from it
}

// DefaultAdaptiveConfig returns the conventional benchmark setup: 100 error
// events within a 10M-bit budget, starting at 5000 bits, growing 2.5x while
// error-starved and 1.5x otherwise.
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		MinErrorEvents: 100,
		MaxBits:        10_000_000,
		InitialGuess:   5000,
		GrowthFast:     2.5,
		GrowthSlow:     1.5,
		LowEventCount:  5,
	}
}

// ValidateAdaptiveConfig returns an error if the config is malformed or
// cannot make forward progress.
func ValidateAdaptiveConfig(cfg AdaptiveConfig) error {
	if cfg.MinErrorEvents <= 0 {
		return fmt.Errorf("%w: min error events must be positive, got %d", ErrInvalidParameter, cfg.MinErrorEvents)
	}
	if cfg.MaxBits <= 0 {
		return fmt.Errorf("%w: bit budget must be positive, got %d", ErrInvalidParameter, cfg.MaxBits)
	}
	if cfg.InitialGuess <= 0 {
		return fmt.Errorf("%w: initial bit guess must be positive, got %d", ErrInvalidParameter, cfg.InitialGuess)
	}
	if cfg.GrowthFast < 1.0 || cfg.GrowthSlow < 1.0 {
		return fmt.Errorf("%w: growth factors must be >= 1, got fast=%g slow=%g", ErrInvalidParameter, cfg.GrowthFast, cfg.GrowthSlow)
	}
	if cfg.LowEventCount < 0 {
		return fmt.Errorf("%w: low-event threshold must be non-negative, got %d", ErrInvalidParameter, cfg.LowEventCount)
	}
	return nil
}

// AdaptiveStep records one measurement step of an adaptive or fixed-size run.
type AdaptiveStep struct {
	Bits             int64   // bits simulated in this step
	BER              float64 // BER measured in this step
	ErrorEvents      int64   // estimated errors in this step (adaptive floors to 1)
	CumulativeBits   int64   // running total after this step
	CumulativeEvents int64   // running total after this step
}

// AdaptiveResult is the outcome of one adaptive or fixed-size measurement.
// Owned by a single run; immutable once returned.
type AdaptiveResult struct {
	TotalBits       int64          // cumulative bits simulated
	ErrorEvents     int64          // cumulative estimated error events
	LastBER         float64        // BER of the final step
	BudgetExhausted bool           // stopped on MaxBits rather than MinErrorEvents
	Steps           []AdaptiveStep // every step's contribution, in order
}

// AdaptiveMeasure escalates the per-step bit count at (order, snrDB) until
// MinErrorEvents estimated errors accumulate or the MaxBits budget runs out.
//
// Each step runs one trial at the current guess; its estimated error count
// is max(1, floor(ber*bits)); the floor guarantees forward progress even at
// extremely low measured BER. Steps that observe fewer than LowEventCount
// errors grow the next guess by GrowthFast (small probes are wasteful at very
// low error rates); otherwise by GrowthSlow, to avoid overshooting the budget
// once errors start appearing. No step is discarded: every contribution stays
// in the running totals.
//
// Budget exhaustion is not an error: the result carries BudgetExhausted=true
// so degraded-confidence outcomes stay distinguishable from successful stops.
func (s *Sampler) AdaptiveMeasure(order int, snrDB float64, cfg AdaptiveConfig) (AdaptiveResult, error) {
	if err := ValidateAdaptiveConfig(cfg); err != nil {
		return AdaptiveResult{}, err
	}
	if !ValidOrder(order) {
		return AdaptiveResult{}, fmt.Errorf("%w: unsupported modulation order %d", ErrInvalidParameter, order)
	}

	var res AdaptiveResult
	guess := cfg.InitialGuess
	for step := 0; res.TotalBits < cfg.MaxBits && res.ErrorEvents < cfg.MinErrorEvents; step++ {
		// Clamp the final step so an exhausted run lands exactly on the budget.
		if remaining := cfg.MaxBits - res.TotalBits; guess > remaining {
			guess = remaining
		}
		ber := s.measureOnce(order, snrDB, guess, cfg.Coding, cfg.Seed, step)
		if berSentinel(ber) {
			return AdaptiveResult{}, &KernelError{Op: measureOp(cfg.Coding), Code: ber, Order: order, SNRdB: snrDB}
		}

		events := int64(ber * float64(guess))
		if events < 1 {
			events = 1
		}
		res.TotalBits += guess
		res.ErrorEvents += events
		res.LastBER = ber
		res.Steps = append(res.Steps, AdaptiveStep{
			Bits:             guess,
			BER:              ber,
			ErrorEvents:      events,
			CumulativeBits:   res.TotalBits,
			CumulativeEvents: res.ErrorEvents,
		})
		logrus.Debugf("adaptive %s @ %.2f dB: step %d bits=%d ber=%.3e events=%d (total %d/%d)",
			OrderName(order), snrDB, step, guess, ber, events, res.ErrorEvents, res.TotalBits)

		if events < cfg.LowEventCount {
			guess = int64(float64(guess) * cfg.GrowthFast)
		} else {
			guess = int64(float64(guess) * cfg.GrowthSlow)
		}
		if guess < 1 {
			guess = 1
		}
	}
	res.BudgetExhausted = res.ErrorEvents < cfg.MinErrorEvents
	return res, nil
}

// measureOnce runs a single trial through the path step measurements share:
// coded when requested (the boundary contract has no seeded coded trial),
// otherwise seeded per step when both the seed and the capability exist.
func (s *Sampler) measureOnce(order int, snrDB float64, bits int64, coding bool, seed Seed, step int) float64 {
	switch {
	case coding:
		return s.kernel.CodedBER(order, snrDB, bits, true)
	case seed.Valid && s.seeded != nil:
		return s.seeded.SeededBER(order, snrDB, bits, seed.ForRun(step))
	default:
		return s.kernel.UncodedBER(order, snrDB, bits)
	}
}

func measureOp(coding bool) string {
	if coding {
		return "coded_ber"
	}
	return "uncoded_ber"
}

// FixedMeasure measures BER at (order, snrDB) once per entry of sizes, in
// order. There is no stopping rule: every requested size runs, step error
// counts are not floored (a clean step reports zero events), and the result
// never carries BudgetExhausted. With a valid seed, step i draws seed
// ForRun(i), so a fixed-size series reproduces exactly.
func (s *Sampler) FixedMeasure(order int, snrDB float64, sizes []int64, coding bool, seed Seed) (AdaptiveResult, error) {
	if !ValidOrder(order) {
		return AdaptiveResult{}, fmt.Errorf("%w: unsupported modulation order %d", ErrInvalidParameter, order)
	}
	if len(sizes) == 0 {
		return AdaptiveResult{}, fmt.Errorf("%w: at least one trial size is required", ErrInvalidParameter)
	}
	for _, n := range sizes {
		if n <= 0 {
			return AdaptiveResult{}, fmt.Errorf("%w: trial sizes must be positive, got %d", ErrInvalidParameter, n)
		}
	}

	var res AdaptiveResult
	for step, bits := range sizes {
		ber := s.measureOnce(order, snrDB, bits, coding, seed, step)
		if berSentinel(ber) {
			return AdaptiveResult{}, &KernelError{Op: measureOp(coding), Code: ber, Order: order, SNRdB: snrDB}
		}
		events := int64(ber * float64(bits))
		res.TotalBits += bits
		res.ErrorEvents += events
		res.LastBER = ber
		res.Steps = append(res.Steps, AdaptiveStep{
			Bits:             bits,
			BER:              ber,
			ErrorEvents:      events,
			CumulativeBits:   res.TotalBits,
			CumulativeEvents: res.ErrorEvents,
		})
		logrus.Debugf("fixed %s @ %.2f dB: step %d bits=%d ber=%.3e events=%d",
			OrderName(order), snrDB, step, bits, ber, events)
	}
	return res, nil
}
