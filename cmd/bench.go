package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spidy104/amc-ber-playground/amc"
	"github.com/Spidy104/amc-ber-playground/amc/phy"
	"github.com/Spidy104/amc-ber-playground/amc/report"
)

var (
	benchMods      string // Comma list of modulation orders
	benchSNRs      string // Comma list of SNRs (dB)
	benchSizes     string // Fixed trial sizes; empty selects the adaptive mode
	benchMinEvents int64  // Stop once this many error events accumulate
	benchMaxBits   int64  // Hard bit budget per measurement
	benchGuess     int64  // Initial trial size (bits)
	benchSeed      int64  // Base seed; negative means unseeded
	benchCoding    bool   // Measure through the coded path
	benchCSVPath   string // Optional CSV output path
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark BER trials, adaptively sized or at fixed sizes",
	Run: func(cmd *cobra.Command, args []string) {
		mods, err := parseMods(benchMods)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		snrs, err := parseDemoSNRs(benchSNRs)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if len(snrs) == 0 {
			logrus.Fatalf("At least one SNR is required")
		}

		var sizes []int64
		if benchSizes != "" {
			sizes, err = parseSizes(benchSizes)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		cfg := amc.DefaultAdaptiveConfig()
		cfg.MinErrorEvents = benchMinEvents
		cfg.MaxBits = benchMaxBits
		cfg.InitialGuess = benchGuess
		cfg.Coding = benchCoding
		cfg.Seed = seedFromFlag(benchSeed)
		if sizes == nil {
			if err := amc.ValidateAdaptiveConfig(cfg); err != nil {
				logrus.Fatalf("Invalid adaptive configuration: %v", err)
			}
		}

		sampler := amc.NewSampler(phy.New())
		if benchCoding {
			runCodingSelfTest(sampler.Kernel())
		}

		var runs []report.BenchRun
		for _, m := range mods {
			for _, snr := range snrs {
				var res amc.AdaptiveResult
				if sizes != nil {
					logrus.Infof("Fixed-size measurement: mod=%d, SNR=%g dB, sizes=%v", m, snr, sizes)
					res, err = sampler.FixedMeasure(m, snr, sizes, benchCoding, cfg.Seed)
				} else {
					logrus.Infof("Adaptive measurement: mod=%d, SNR=%g dB", m, snr)
					res, err = sampler.AdaptiveMeasure(m, snr, cfg)
				}
				if err != nil {
					logrus.Fatalf("Measurement failed (mod=%d, SNR=%g dB): %v", m, snr, err)
				}
				runs = append(runs, report.BenchRun{Modulation: m, SNRdB: snr, Result: res})
			}
		}

		if err := report.PrintBenchTable(os.Stdout, runs); err != nil {
			logrus.Errorf("Failed to render bench table: %v", err)
		}
		if benchCSVPath != "" {
			f, err := os.Create(benchCSVPath)
			if err != nil {
				logrus.Errorf("Failed to create CSV: %v", err)
				return
			}
			defer f.Close()
			if err := report.WriteBenchCSV(f, runs); err != nil {
				logrus.Errorf("Failed to write CSV: %v", err)
				return
			}
			logrus.Infof("Wrote CSV: %s", benchCSVPath)
		}
	},
}

// parseSizes parses a comma list of positive trial sizes in bits.
func parseSizes(s string) ([]int64, error) {
	var sizes []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid trial size %q", part)
		}
		if n <= 0 {
			return nil, fmt.Errorf("trial sizes must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no trial sizes given")
	}
	return sizes, nil
}

func init() {
	benchCmd.Flags().StringVar(&benchMods, "mods", "4", "Comma list of modulation orders (2,4,16)")
	benchCmd.Flags().StringVar(&benchSNRs, "snrs", "4,8,12", "Comma list of SNRs (dB)")
	benchCmd.Flags().StringVar(&benchSizes, "sizes", "", "Fixed trial sizes in bits, comma list (skips adaptive sizing)")
	benchCmd.Flags().Int64Var(&benchMinEvents, "min-events", 100, "Error events required for a confident estimate")
	benchCmd.Flags().Int64Var(&benchMaxBits, "max-bits", 10000000, "Hard bit budget per measurement")
	benchCmd.Flags().Int64Var(&benchGuess, "guess", 5000, "Initial trial size in bits")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", -1, "Deterministic base seed (negative = unseeded)")
	benchCmd.Flags().BoolVar(&benchCoding, "coding", false, "Measure the coded path (K=7, rate 1/2)")
	benchCmd.Flags().StringVar(&benchCSVPath, "csv", "", "Write bench results to CSV file")

	rootCmd.AddCommand(benchCmd)
}
