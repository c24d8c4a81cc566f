// Package filterdesign generates coefficient tables for the filters of an SDR
// receive chain.
//
// Two independent design pipelines are provided:
//
//   - CIC compensation fitting: the inverse response of one or two cascaded
//     CIC decimators is approximated by the closed-form correction
//     H(f) + p1·exp(p2·(f-0.5)), with (p1, p2) found by bounded nonlinear
//     least squares (p1 ∈ [-10, 0], p2 ∈ [0, 100]).
//   - FIR specification design: a piecewise-linear magnitude specification in
//     dB (de-emphasis, AM/SSB pre-emphasis, a test notch, a low-pass) is
//     turned into a 79-tap linear-phase FIR filter by least-squares synthesis
//     and normalized to 0 dB at 400 Hz.
//
// Both pipelines implement [Designer] and end in a [Table], a text rendering
// of the coefficients meant to be pasted into firmware sources.
//
// # Quick Start
//
// Fit the compensation of a single wideband CIC stage:
//
//	fit, err := filterdesign.FitCICCompensation(
//	    filterdesign.CICStage{N: 5, R: 8192, M: 1},
//	    filterdesign.CICStage{}, // no second stage
//	    0,                       // default grid (300 points)
//	    [2]float64{},            // default initial guess (-3, 30)
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(fit.Table("WF CICF"))
//
// Design the 48 kHz NFM de-emphasis filter with low-frequency rolloff:
//
//	coeffs, err := filterdesign.DesignFIRFilter(48000, filterdesign.PresetNFMRolloff)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(filterdesign.FormatValues(coeffs, 9))
//
// # Compensation fit result
//
// The correction model is fitted against the very target it is added to, so
// the residual reduces to the correction term p1·exp(p2·(f-0.5)) and does not
// depend on the CIC stages. Every fit therefore converges to the same
// near-trivial optimum (p1 ≈ 0, p2 near the initial guess) whatever the
// stages are; a sweep prints identical parameter rows. This is the expected
// behavior of the formulation, not a solver fault.
//
// # Presets
//
// Breakpoint tables are looked up by preset and sample rate class: 12 kHz
// uses the short tables, every other rate the extended tables that continue
// the rolloff up to Nyquist. See [PresetSpec].
//
// # Errors
//
// Failures match one of [ErrConfiguration], [ErrConvergence] or
// [ErrDegenerateNormalization] with errors.Is. A failed fit is reported as a
// [*ConvergenceError] carrying the last parameter vector.
//
// # Concurrency
//
// Every call is a pure function of its inputs and shares no state, so
// independent designs may run on separate goroutines. [SweepCIC] does this for
// a range of second-stage decimation ratios.
package filterdesign
