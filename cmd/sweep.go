package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spidy104/amc-ber-playground/amc"
	"github.com/Spidy104/amc-ber-playground/amc/phy"
	"github.com/Spidy104/amc-ber-playground/amc/report"
)

var (
	sweepMods      string  // Comma list of modulation orders
	sweepStartDB   float64 // SNR grid start (dB)
	sweepStopDB    float64 // SNR grid stop (dB)
	sweepStepDB    float64 // SNR grid step (dB)
	sweepBits      int64   // Bits per trial
	sweepRuns      int     // Monte Carlo runs per grid point
	sweepPilots    int64   // Pilot symbols for the SNR estimation curve
	sweepSeed      int64   // Base seed; negative means unseeded
	sweepCoding    bool    // Also measure coded BER
	sweepCodedOnly bool    // Skip the uncoded columns
	sweepNoSNR     bool    // Skip the SNR estimation curve
	sweepCSVPath   string  // Optional CSV output path
	sweepSpecPath  string  // Optional YAML scenario file
	sweepWorkers   int     // Concurrent grid points
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Measure BER across a (modulation, SNR) grid",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := amc.DefaultSweepConfig()
		if sweepSpecPath != "" {
			spec, err := amc.LoadSweepSpec(sweepSpecPath)
			if err != nil {
				logrus.Fatalf("Failed to load sweep spec: %v", err)
			}
			cfg = spec.SweepConfig()
			if spec.Pilots > 0 {
				sweepPilots = spec.Pilots
			}
		}

		// CLI flags override the scenario file.
		if cmd.Flags().Changed("mods") || sweepSpecPath == "" {
			mods, err := parseMods(sweepMods)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg.Modulations = mods
		}
		if cmd.Flags().Changed("snr-start") || sweepSpecPath == "" {
			cfg.SNRStartDB = sweepStartDB
		}
		if cmd.Flags().Changed("snr-stop") || sweepSpecPath == "" {
			cfg.SNRStopDB = sweepStopDB
		}
		if cmd.Flags().Changed("snr-step") || sweepSpecPath == "" {
			cfg.SNRStepDB = sweepStepDB
		}
		if cmd.Flags().Changed("bits") || sweepSpecPath == "" {
			cfg.Bits = sweepBits
		}
		if cmd.Flags().Changed("runs") || sweepSpecPath == "" {
			cfg.Runs = sweepRuns
		}
		if cmd.Flags().Changed("coding") {
			cfg.Coding = sweepCoding
		}
		if cmd.Flags().Changed("coded-only") {
			cfg.CodedOnly = sweepCodedOnly
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedFromFlag(sweepSeed)
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = sweepWorkers
		}
		if err := amc.ValidateSweepConfig(cfg); err != nil {
			logrus.Fatalf("Invalid sweep configuration: %v", err)
		}

		sampler := amc.NewSampler(phy.New())
		if cfg.Coding || cfg.CodedOnly {
			runCodingSelfTest(sampler.Kernel())
		}

		logrus.Infof("Starting sweep: mods=%v, SNR [%g, %g] dB step %g, %d bits x %d runs per point",
			cfg.Modulations, cfg.SNRStartDB, cfg.SNRStopDB, cfg.SNRStepDB, cfg.Bits, cfg.Runs)
		startTime := time.Now()

		res, err := sampler.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		if err := report.PrintSweepTable(os.Stdout, res); err != nil {
			logrus.Errorf("Failed to render sweep table: %v", err)
		}

		if sweepCSVPath != "" {
			if err := report.WriteSweepCSVFile(sweepCSVPath, res); err != nil {
				// Presentation failure; the computed results above are intact.
				logrus.Errorf("Failed to write CSV: %v", err)
			} else {
				logrus.Infof("Wrote CSV: %s", sweepCSVPath)
			}
		}

		if !sweepNoSNR {
			ests, err := sampler.SNRCurve(res.SNRsDB, sweepPilots, 5)
			if err != nil {
				logrus.Errorf("SNR estimation curve failed: %v", err)
			} else if err := report.PrintSNRCurve(os.Stdout, res.SNRsDB, ests); err != nil {
				logrus.Errorf("Failed to render SNR curve: %v", err)
			}
		}

		logrus.Infof("Sweep complete in %.2f s", time.Since(startTime).Seconds())
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepMods, "mods", "2,4,16", "Comma list of modulation orders (2,4,16)")
	sweepCmd.Flags().Float64Var(&sweepStartDB, "snr-start", 0.0, "SNR grid start (dB)")
	sweepCmd.Flags().Float64Var(&sweepStopDB, "snr-stop", 20.0, "SNR grid stop (dB)")
	sweepCmd.Flags().Float64Var(&sweepStepDB, "snr-step", 1.0, "SNR grid step (dB)")
	sweepCmd.Flags().Int64Var(&sweepBits, "bits", 500000, "Number of bits per trial")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 2, "Monte Carlo runs per SNR point")
	sweepCmd.Flags().Int64Var(&sweepPilots, "pilots", 200, "Pilot symbols for SNR estimation")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", -1, "Deterministic base seed (negative = unseeded)")
	sweepCmd.Flags().BoolVar(&sweepCoding, "coding", false, "Enable convolutional coding (K=7, rate 1/2)")
	sweepCmd.Flags().BoolVar(&sweepCodedOnly, "coded-only", false, "Show only coded results (no uncoded)")
	sweepCmd.Flags().BoolVar(&sweepNoSNR, "no-snr-curve", false, "Skip the SNR estimation curve")
	sweepCmd.Flags().StringVar(&sweepCSVPath, "csv", "", "Write BER results to CSV file")
	sweepCmd.Flags().StringVar(&sweepSpecPath, "config", "", "Sweep scenario YAML file (flags override)")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 1, "Concurrent grid points")

	rootCmd.AddCommand(sweepCmd)
}
