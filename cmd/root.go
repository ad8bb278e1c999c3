package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spidy104/amc-ber-playground/amc"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "amcsim",
	Short: "Monte Carlo BER/SNR simulator with adaptive modulation calibration",
	Long: `amcsim drives Monte Carlo evaluation of digital-modulation link performance
(BER vs Eb/N0), estimates channel SNR from pilot symbols, and calibrates the
SNR thresholds an adaptive modulation scheme switches on.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// parseMods parses a comma list of modulation orders, rejecting unsupported ones.
func parseMods(s string) ([]int, error) {
	var mods []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid modulation order %q", part)
		}
		if !amc.ValidOrder(m) {
			return nil, fmt.Errorf("unsupported modulation order %d (supported: 2, 4, 16)", m)
		}
		mods = append(mods, m)
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("no modulation orders given")
	}
	return mods, nil
}

// seedFromFlag converts the CLI seed flag into an optional Seed.
// The flag carries an int64 so -1 can mean "unseeded" without a second flag.
func seedFromFlag(seed int64) amc.Seed {
	if seed < 0 {
		return amc.Seed{}
	}
	return amc.NewSeed(uint64(seed))
}

// runCodingSelfTest exercises the coding path once at startup when coding is
// requested. A failure is a warning, not fatal: the uncoded columns remain valid.
func runCodingSelfTest(k amc.Kernel) {
	if code := k.CodingSelfTest(); code != 0 {
		logrus.Warnf("Convolutional coding self-test failed (code: %d)", code)
		return
	}
	logrus.Infof("Convolutional coding enabled (K=7, rate 1/2, ~%.1f dB gain)", k.CodingGainDB())
}
