package amc

import "fmt"

// SupportedOrders are the modulation orders the boundary contract accepts.
var SupportedOrders = []int{2, 4, 16}

// ValidOrder reports whether order is in the supported discrete set.
func ValidOrder(order int) bool {
	return order == 2 || order == 4 || order == 16
}

// OrderName returns the conventional constellation name for a modulation order.
func OrderName(order int) string {
	switch order {
	case 2:
		return "BPSK"
	case 4:
		return "QPSK"
	case 16:
		return "16QAM"
	}
	return fmt.Sprintf("mod%d", order)
}

// TrialRequest describes one Monte Carlo trial. Ephemeral: built, validated
// and consumed within a single sampler call.
type TrialRequest struct {
	Modulation int     // one of SupportedOrders
	SNRdB      float64 // Eb/N0 in dB
	Bits       int64   // non-negative; upper cap enforced by the kernel
	Coding     bool    // route through the convolutional coding path
}

// Validate checks the caller-controlled invariants. The kernel enforces its
// own envelope (SNR range, bit cap) via sentinels.
func (r TrialRequest) Validate() error {
	if !ValidOrder(r.Modulation) {
		return fmt.Errorf("%w: unsupported modulation order %d (supported: 2, 4, 16)", ErrInvalidParameter, r.Modulation)
	}
	if r.Bits < 0 {
		return fmt.Errorf("%w: bit count must be non-negative, got %d", ErrInvalidParameter, r.Bits)
	}
	return nil
}
