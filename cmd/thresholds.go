package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spidy104/amc-ber-playground/amc"
	"github.com/Spidy104/amc-ber-playground/amc/phy"
	"github.com/Spidy104/amc-ber-playground/amc/report"
)

var (
	thrTargetBER float64 // Target BER at the switching point
	thrBits      int64   // Bits per probe trial
	thrRuns      int     // Runs averaged per probe
	thrLowDB     float64 // Bisection bracket low edge (dB)
	thrHighDB    float64 // Bisection bracket high edge (dB)
	thrTolDB     float64 // Bracket width at termination (dB)
	thrSeed      int64   // Base seed; negative means unseeded
	thrPilots    int64   // Pilot symbols per decision demo
	thrDemoSNRs  string  // True SNRs for the decision demos
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Calibrate AMC switching thresholds via bisection",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := amc.DefaultThresholdConfig()
		cfg.TargetBER = thrTargetBER
		cfg.Bits = thrBits
		cfg.Runs = thrRuns
		cfg.LowDB = thrLowDB
		cfg.HighDB = thrHighDB
		cfg.Tolerance = thrTolDB
		cfg.Seed = seedFromFlag(thrSeed)
		if err := amc.ValidateThresholdConfig(cfg); err != nil {
			logrus.Fatalf("Invalid threshold configuration: %v", err)
		}

		sampler := amc.NewSampler(phy.New())

		logrus.Infof("Calibrating thresholds: target BER %.2e, bracket [%g, %g] dB, tol %g dB",
			cfg.TargetBER, cfg.LowDB, cfg.HighDB, cfg.Tolerance)
		pair, err := sampler.FindThresholdPair(cfg)
		if err != nil {
			logrus.Fatalf("Threshold search failed: %v", err)
		}
		fmt.Println(report.FormatThresholds(pair))

		demos, err := parseDemoSNRs(thrDemoSNRs)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, trueSnr := range demos {
			est, err := sampler.AverageSNR(trueSnr, thrPilots, thrRuns)
			if err != nil {
				logrus.Errorf("SNR estimation at %g dB failed: %v", trueSnr, err)
				continue
			}
			fmt.Println(report.FormatDecision(trueSnr, est, pair.Decide(est)))
		}
	},
}

// parseDemoSNRs parses a comma list of true SNRs in dB. Empty means no demos.
func parseDemoSNRs(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, tok := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid demo SNR %q: %w", tok, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func init() {
	thresholdsCmd.Flags().Float64Var(&thrTargetBER, "target-ber", 1e-5, "Target BER at the switching threshold")
	thresholdsCmd.Flags().Int64Var(&thrBits, "bits", 1000000, "Number of bits per bisection probe")
	thresholdsCmd.Flags().IntVar(&thrRuns, "runs", 2, "Monte Carlo runs averaged per probe")
	thresholdsCmd.Flags().Float64Var(&thrLowDB, "low", 0.0, "Bisection bracket low edge (dB)")
	thresholdsCmd.Flags().Float64Var(&thrHighDB, "high", 30.0, "Bisection bracket high edge (dB)")
	thresholdsCmd.Flags().Float64Var(&thrTolDB, "tol", 0.1, "Bracket width at termination (dB)")
	thresholdsCmd.Flags().Int64Var(&thrSeed, "seed", -1, "Deterministic base seed (negative = unseeded)")
	thresholdsCmd.Flags().Int64Var(&thrPilots, "pilots", 200, "Pilot symbols per decision demo")
	thresholdsCmd.Flags().StringVar(&thrDemoSNRs, "demo-snrs", "5,10,15,20", "True SNRs (dB) for decision demos, comma list")

	rootCmd.AddCommand(thresholdsCmd)
}
