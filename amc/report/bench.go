package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Spidy104/amc-ber-playground/amc"
)

// BenchRun pairs one adaptive measurement with the modulation it measured.
type BenchRun struct {
	Modulation int
	SNRdB      float64
	Result     amc.AdaptiveResult
}

// PrintBenchTable renders every retained adaptive step, then a stop summary.
// Budget-exhausted runs are labelled so degraded-confidence results stay
// distinguishable from successful stops.
func PrintBenchTable(w io.Writer, runs []BenchRun) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "mod\tstep_bits\ttotal_bits\tber\tevents\ttotal_events")
	for _, run := range runs {
		for _, step := range run.Result.Steps {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%.3e\t%d\t%d\n",
				run.Modulation, step.Bits, step.CumulativeBits,
				DisplayBER(step.BER, step.Bits), step.ErrorEvents, step.CumulativeEvents)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, run := range runs {
		stop := "min errors reached"
		if run.Result.BudgetExhausted {
			stop = "bit budget exhausted (low confidence)"
		}
		fmt.Fprintf(w, "--> %s @ %.1f dB: total_bits=%d est_errors=%d [%s]\n",
			amc.OrderName(run.Modulation), run.SNRdB,
			run.Result.TotalBits, run.Result.ErrorEvents, stop)
	}
	return nil
}

// WriteBenchCSV writes one row per adaptive step across all runs.
func WriteBenchCSV(w io.Writer, runs []BenchRun) error {
	cw := csv.NewWriter(w)
	header := []string{"mod", "snr_db", "step_bits", "total_bits", "ber", "events", "total_events", "budget_exhausted"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing bench CSV header: %w", err)
	}
	for _, run := range runs {
		for _, step := range run.Result.Steps {
			row := []string{
				strconv.Itoa(run.Modulation),
				strconv.FormatFloat(run.SNRdB, 'g', -1, 64),
				strconv.FormatInt(step.Bits, 10),
				strconv.FormatInt(step.CumulativeBits, 10),
				strconv.FormatFloat(step.BER, 'e', 6, 64),
				strconv.FormatInt(step.ErrorEvents, 10),
				strconv.FormatInt(step.CumulativeEvents, 10),
				strconv.FormatBool(run.Result.BudgetExhausted),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing bench CSV row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
