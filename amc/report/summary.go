package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Spidy104/amc-ber-playground/amc"
)

// FormatThresholds renders a calibrated threshold pair one line.
func FormatThresholds(pair amc.ThresholdPair) string {
	return fmt.Sprintf("Threshold QPSK: %.2f dB | 16QAM: %.2f dB", pair.QPSKdB, pair.QAM16dB)
}

// FormatDecision renders one decision demonstration line.
func FormatDecision(trueSnrDB, estSnrDB float64, choice amc.Choice) string {
	return fmt.Sprintf("True SNR %.1f dB -> est %.2f dB => %s", trueSnrDB, estSnrDB, choice)
}

// PrintSweepTable renders the sweep as an aligned console table, one row per
// SNR point with uncoded (and coded, when measured) columns per modulation.
func PrintSweepTable(w io.Writer, res *amc.SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "SNR_dB")
	if res.Uncoded != nil {
		for _, m := range res.Modulations {
			fmt.Fprintf(tw, "\t%s", amc.OrderName(m))
		}
	}
	if res.Coded != nil {
		for _, m := range res.Modulations {
			fmt.Fprintf(tw, "\t%s(coded)", amc.OrderName(m))
		}
	}
	fmt.Fprintln(tw)

	for i, snr := range res.SNRsDB {
		fmt.Fprintf(tw, "%.1f", snr)
		if res.Uncoded != nil {
			for _, m := range res.Modulations {
				fmt.Fprintf(tw, "\t%.3e", DisplayBER(res.Uncoded[m][i], res.Bits))
			}
		}
		if res.Coded != nil {
			for _, m := range res.Modulations {
				fmt.Fprintf(tw, "\t%.3e", DisplayBER(res.Coded[m][i], res.Bits))
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// PrintSNRCurve renders the estimated-vs-true SNR curve.
func PrintSNRCurve(w io.Writer, snrsDB, estsDB []float64) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "True_dB\tEstimated_dB")
	for i := range snrsDB {
		fmt.Fprintf(tw, "%.1f\t%.2f\n", snrsDB[i], estsDB[i])
	}
	return tw.Flush()
}
