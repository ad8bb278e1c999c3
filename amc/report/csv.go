// Package report renders finished measurement results to CSV and console
// sinks. It consumes immutable value objects from package amc and never
// feeds back into measurement: a failure here cannot discard or corrupt
// already-computed sweep or threshold results.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Spidy104/amc-ber-playground/amc"
)

// DisplayBER substitutes the minimum detectable BER (half an error event over
// the observed bits) for an exact-zero estimate, so log-scale outputs stay
// finite. Display-only: the statistical estimate itself is left at zero by
// the sampling layer.
func DisplayBER(ber float64, bits int64) float64 {
	if ber == 0.0 && bits > 0 {
		return 0.5 / float64(bits)
	}
	return ber
}

// WriteSweepCSV writes one row per SNR grid point with a BER column per
// modulation order: uncoded columns first, then coded columns when present.
func WriteSweepCSV(w io.Writer, res *amc.SweepResult) error {
	cw := csv.NewWriter(w)

	header := []string{"SNR_dB"}
	if res.Uncoded != nil {
		for _, m := range res.Modulations {
			header = append(header, fmt.Sprintf("BER_uncoded_mod%d", m))
		}
	}
	if res.Coded != nil {
		for _, m := range res.Modulations {
			header = append(header, fmt.Sprintf("BER_coded_mod%d", m))
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing sweep CSV header: %w", err)
	}

	for i, snr := range res.SNRsDB {
		row := []string{strconv.FormatFloat(snr, 'g', -1, 64)}
		if res.Uncoded != nil {
			for _, m := range res.Modulations {
				ber := DisplayBER(res.Uncoded[m][i], res.Bits)
				row = append(row, strconv.FormatFloat(ber, 'e', 6, 64))
			}
		}
		if res.Coded != nil {
			for _, m := range res.Modulations {
				ber := DisplayBER(res.Coded[m][i], res.Bits)
				row = append(row, strconv.FormatFloat(ber, 'e', 6, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sweep CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweepCSVFile writes the sweep to a file, creating or truncating it.
func WriteSweepCSVFile(path string, res *amc.SweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sweep CSV %s: %w", path, err)
	}
	defer f.Close()
	return WriteSweepCSV(f, res)
}
