// Package amc provides the experiment-control layer for Monte Carlo
// bit-error-rate simulation and adaptive modulation calibration.
//
// # Reading Guide
//
// Start with these three files to understand the orchestration core:
//   - kernel.go: the capability interface the numeric kernel must honor
//   - sampler.go: trial averaging with sentinel short-circuit and seeded reproducibility
//   - sweep.go: the (modulation, SNR) grid driver
//
// # Architecture
//
// The package layers, leaf-first:
//   - Kernel boundary: one scalar per trial, errors as in-band sentinels
//   - Sampler: N trials reduced to one estimate; sentinels become typed errors here
//   - FindThreshold: noisy bisection for the minimum SNR meeting a target BER
//   - AdaptiveMeasure: escalates trial size until enough error events accumulate
//   - Decide: pure threshold comparison mapping an SNR estimate to a modulation choice
//
// Implementations of the kernel contract live in sub-packages; amc/phy is the
// pure-Go reference kernel. Presentation (CSV, tables, display floors) lives
// in amc/report and never feeds back into measurement.
//
// Within one measurement the control flow is inherently sequential: bisection
// bounds and adaptive bit-count guesses depend on earlier results. Independent
// (modulation, SNR) points share no state and may run concurrently; RunSweep
// exploits that with a bounded worker pool.
package amc
