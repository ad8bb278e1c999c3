package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Spidy104/amc-ber-playground/amc"
	"github.com/Spidy104/amc-ber-playground/amc/phy"
	"github.com/Spidy104/amc-ber-playground/amc/report"
)

var (
	decideEstDB    float64 // Pre-estimated SNR (dB), used as-is when set
	decideTrueDB   float64 // True channel SNR (dB) to estimate from pilots
	decidePilots   int64   // Pilot symbols per estimation run
	decideRuns     int     // Estimation runs averaged
	decideQPSKdB   float64 // QPSK switching threshold (dB)
	decide16QAMdB  float64 // 16QAM switching threshold (dB)
	decideOrderOut bool    // Print only the chosen modulation order
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Pick a modulation from an SNR estimate and calibrated thresholds",
	Run: func(cmd *cobra.Command, args []string) {
		pair := amc.ThresholdPair{QPSKdB: decideQPSKdB, QAM16dB: decide16QAMdB}
		if pair.QAM16dB < pair.QPSKdB {
			logrus.Fatalf("16QAM threshold (%g dB) must not be below the QPSK threshold (%g dB)",
				pair.QAM16dB, pair.QPSKdB)
		}

		trueSnr := decideTrueDB
		est := decideEstDB
		if !cmd.Flags().Changed("est") {
			if !cmd.Flags().Changed("snr") {
				logrus.Fatalf("Either --est or --snr is required")
			}
			sampler := amc.NewSampler(phy.New())
			v, err := sampler.AverageSNR(trueSnr, decidePilots, decideRuns)
			if err != nil {
				logrus.Fatalf("SNR estimation failed: %v", err)
			}
			est = v
		} else {
			trueSnr = math.NaN()
		}

		choice := pair.Decide(est)
		if decideOrderOut {
			fmt.Println(choice.Order())
			return
		}
		if math.IsNaN(trueSnr) {
			fmt.Printf("Estimated SNR %.2f dB => %s\n", est, choice)
			return
		}
		fmt.Println(report.FormatDecision(trueSnr, est, choice))
	},
}

func init() {
	decideCmd.Flags().Float64Var(&decideEstDB, "est", 0.0, "Pre-estimated SNR (dB), skips pilot estimation")
	decideCmd.Flags().Float64Var(&decideTrueDB, "snr", 0.0, "True channel SNR (dB) to estimate from pilots")
	decideCmd.Flags().Int64Var(&decidePilots, "pilots", 200, "Pilot symbols per estimation run")
	decideCmd.Flags().IntVar(&decideRuns, "runs", 5, "Estimation runs averaged")
	decideCmd.Flags().Float64Var(&decideQPSKdB, "qpsk-threshold", 9.6, "SNR threshold for switching to QPSK (dB)")
	decideCmd.Flags().Float64Var(&decide16QAMdB, "qam16-threshold", 16.5, "SNR threshold for switching to 16QAM (dB)")
	decideCmd.Flags().BoolVar(&decideOrderOut, "order-only", false, "Print only the chosen modulation order")

	rootCmd.AddCommand(decideCmd)
}
