package amc

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// SweepConfig parameterizes a BER sweep over a (modulation, SNR) grid.
type SweepConfig struct {
	Modulations []int   // subset of SupportedOrders
	SNRStartDB  float64 // grid start (inclusive)
	SNRStopDB   float64 // grid stop (inclusive, up to rounding)
	SNRStepDB   float64 // grid step, must be positive
	Bits        int64   // bits per trial
	Runs        int     // trials averaged per grid point
	Coding      bool    // also measure the coded BER column
	CodedOnly   bool    // skip the uncoded column (implies Coding)
	Seed        Seed    // optional; same base seed per point, like-for-like reproducibility
	Workers     int     // max concurrent grid points; <=1 means sequential
}

// DefaultSweepConfig mirrors the conventional CLI defaults.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Modulations: []int{2, 4, 16},
		SNRStartDB:  0.0,
		SNRStopDB:   20.0,
		SNRStepDB:   1.0,
		Bits:        500_000,
		Runs:        2,
		Workers:     1,
	}
}

// ValidateSweepConfig returns an error if the sweep parameters are malformed.
func ValidateSweepConfig(cfg SweepConfig) error {
	if len(cfg.Modulations) == 0 {
		return fmt.Errorf("%w: at least one modulation order required", ErrInvalidParameter)
	}
	for _, m := range cfg.Modulations {
		if !ValidOrder(m) {
			return fmt.Errorf("%w: unsupported modulation order %d (supported: 2, 4, 16)", ErrInvalidParameter, m)
		}
	}
	if cfg.Bits <= 0 {
		return fmt.Errorf("%w: bit count must be positive, got %d", ErrInvalidParameter, cfg.Bits)
	}
	if cfg.Runs <= 0 {
		return fmt.Errorf("%w: run count must be positive, got %d", ErrInvalidParameter, cfg.Runs)
	}
	if cfg.SNRStopDB < cfg.SNRStartDB {
		return fmt.Errorf("%w: SNR stop %g dB below start %g dB", ErrInvalidParameter, cfg.SNRStopDB, cfg.SNRStartDB)
	}
	if cfg.SNRStepDB <= 0 {
		return fmt.Errorf("%w: SNR step must be positive, got %g", ErrInvalidParameter, cfg.SNRStepDB)
	}
	return nil
}

// SNRGrid expands [startDB, stopDB] into an inclusive grid with the given
// step. A small epsilon keeps the stop point in the grid despite float
// rounding.
func SNRGrid(startDB, stopDB, stepDB float64) []float64 {
	n := int(math.Floor((stopDB-startDB)/stepDB+1e-9)) + 1
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{startDB}
	}
	grid := make([]float64, n)
	floats.Span(grid, startDB, startDB+float64(n-1)*stepDB)
	return grid
}

// SweepResult collects the Aggregate Estimates of one sweep. Each column is
// ordered like SNRsDB. Immutable once RunSweep returns.
type SweepResult struct {
	SNRsDB      []float64
	Modulations []int
	Bits        int64
	Uncoded     map[int][]float64 // modulation order -> BER per grid point (nil if CodedOnly)
	Coded       map[int][]float64 // modulation order -> coded BER per grid point (nil unless Coding)
}

// RunSweep measures the BER at every (modulation, SNR) grid point.
//
// Points are independent (no bisection bounds or adaptive guesses link them),
// so they run under a bounded worker pool. Each point owns its trials and
// writes to a distinct slice index; with a valid seed every point derives the
// same per-run seeds it would get sequentially, so the parallel sweep is
// reproducible.
func (s *Sampler) RunSweep(cfg SweepConfig) (*SweepResult, error) {
	if err := ValidateSweepConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.CodedOnly {
		cfg.Coding = true
	}

	res := &SweepResult{
		SNRsDB:      SNRGrid(cfg.SNRStartDB, cfg.SNRStopDB, cfg.SNRStepDB),
		Modulations: cfg.Modulations,
		Bits:        cfg.Bits,
	}
	if !cfg.CodedOnly {
		res.Uncoded = make(map[int][]float64, len(cfg.Modulations))
	}
	if cfg.Coding {
		res.Coded = make(map[int][]float64, len(cfg.Modulations))
	}
	for _, m := range cfg.Modulations {
		if res.Uncoded != nil {
			res.Uncoded[m] = make([]float64, len(res.SNRsDB))
		}
		if res.Coded != nil {
			res.Coded[m] = make([]float64, len(res.SNRsDB))
		}
	}

	var g errgroup.Group
	if cfg.Workers > 1 {
		g.SetLimit(cfg.Workers)
	} else {
		g.SetLimit(1)
	}
	for _, m := range cfg.Modulations {
		for i, snr := range res.SNRsDB {
			m, i, snr := m, i, snr // per-iteration copies for Go <1.22 loop semantics
			g.Go(func() error {
				if res.Uncoded != nil {
					ber, err := s.Average(TrialRequest{Modulation: m, SNRdB: snr, Bits: cfg.Bits}, cfg.Runs, cfg.Seed)
					if err != nil {
						return err
					}
					res.Uncoded[m][i] = ber
				}
				if res.Coded != nil {
					ber, err := s.Average(TrialRequest{Modulation: m, SNRdB: snr, Bits: cfg.Bits, Coding: true}, cfg.Runs, cfg.Seed)
					if err != nil {
						return err
					}
					res.Coded[m][i] = ber
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logrus.Infof("sweep complete: %d modulations x %d SNR points, %d bits/trial",
		len(cfg.Modulations), len(res.SNRsDB), cfg.Bits)
	return res, nil
}

// SNRCurve averages `runs` estimation trials at each true SNR in snrsDB,
// producing the estimated-vs-true curve.
func (s *Sampler) SNRCurve(snrsDB []float64, pilots int64, runs int) ([]float64, error) {
	ests := make([]float64, len(snrsDB))
	for i, snr := range snrsDB {
		est, err := s.AverageSNR(snr, pilots, runs)
		if err != nil {
			return nil, err
		}
		ests[i] = est
	}
	return ests, nil
}
