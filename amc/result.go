package amc

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks caller-side configuration faults detected before
// any kernel call: non-positive run counts, malformed sweep bounds, bad
// modulation orders. Wrap with context via fmt.Errorf("...: %w", ...).
var ErrInvalidParameter = errors.New("invalid parameter")

// KernelError reports an in-band error sentinel returned by the numeric
// kernel. The sentinel code is preserved unmodified for diagnostics; it is
// never averaged into an aggregate.
type KernelError struct {
	Op    string  // kernel operation, e.g. "uncoded_ber", "estimate_snr"
	Code  float64 // raw sentinel value
	Order int     // modulation order of the failing trial, 0 if not applicable
	SNRdB float64 // SNR of the failing trial
}

func (e *KernelError) Error() string {
	if e.Order != 0 {
		return fmt.Sprintf("kernel %s failed (sentinel %g) at order=%d snr=%gdB", e.Op, e.Code, e.Order, e.SNRdB)
	}
	return fmt.Sprintf("kernel %s failed (sentinel %g) at snr=%gdB", e.Op, e.Code, e.SNRdB)
}

// IsKernelError reports whether err (or anything it wraps) is a KernelError.
func IsKernelError(err error) bool {
	var ke *KernelError
	return errors.As(err, &ke)
}

// berSentinel reports whether a BER trial result is an error sentinel.
func berSentinel(v float64) bool {
	return v < 0
}

// snrSentinel reports whether an SNR estimation result is an error sentinel
// (-999.0 by contract; anything below the physical envelope is treated as one).
func snrSentinel(v float64) bool {
	return v <= -500.0
}
