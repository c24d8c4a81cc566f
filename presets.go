package filterdesign

import (
	"fmt"
	"math"

	"github.com/tphakala/go-filter-design/internal/fir"
)

// Breakpoint is one edge of a linear segment of a magnitude specification.
type Breakpoint = fir.Breakpoint

// MagnitudeSpec is a piecewise-linear magnitude specification in dB. Points
// pair up into bands; a band that starts where the previous one ended writes
// a step.
type MagnitudeSpec = fir.MagnitudeSpec

// Preset identifies one of the built-in FIR specifications.
type Preset int

const (
	// PresetNFMRolloff is NFM de-emphasis (-20 dB/decade) with the audio
	// below 400 Hz rolled off to -80 dB.
	PresetNFMRolloff Preset = iota

	// PresetNFMFlat is NFM de-emphasis kept flat down to DC.
	PresetNFMFlat

	// PresetAM75us is the AM/SSB 75 µs curve.
	PresetAM75us

	// PresetAM50us is the AM/SSB 50 µs curve.
	PresetAM50us

	// PresetNotchTest is a synthetic -20 dB notch from 2 to 3 kHz.
	PresetNotchTest

	// PresetLowPass is flat to 400 Hz and -80 dB from 4 kHz.
	PresetLowPass

	numPresets
)

var presetNames = [numPresets]string{
	PresetNFMRolloff: "NFM -LF",
	PresetNFMFlat:    "NFM +LF",
	PresetAM75us:     "AM/SSB 75 uS",
	PresetAM50us:     "AM/SSB 50 uS",
	PresetNotchTest:  "-20 dB test",
	PresetLowPass:    "low-pass 400 Hz",
}

// String implements fmt.Stringer.
func (p Preset) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// Valid reports whether p names a built-in preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < numPresets
}

// Presets lists every built-in preset in id order.
func Presets() []Preset {
	out := make([]Preset, numPresets)
	for i := range out {
		out[i] = Preset(i)
	}
	return out
}

// RateClass selects between the short and extended breakpoint tables.
type RateClass int

const (
	// RateAny marks tables that do not depend on the sample rate.
	RateAny RateClass = iota

	// RateLow is the 12 kHz audio rate.
	RateLow

	// RateHigh is every other rate; its tables extend the rolloff to Nyquist.
	RateHigh
)

// ClassifyRate returns the rate class of sampleRate.
func ClassifyRate(sampleRate float64) RateClass {
	if sampleRate == lowSampleRate {
		return RateLow
	}
	return RateHigh
}

// nyquist in a table stands for sampleRate/2.
var nyquist = math.Inf(1)

type presetKey struct {
	preset Preset
	class  RateClass
}

// presetTables holds every built-in specification as (Hz, dB) edge pairs.
var presetTables = map[presetKey][]Breakpoint{
	{PresetNFMRolloff, RateLow}: bands(
		[]float64{0, 200, 200, 400, 400, 600, 600, 800, 800, 1200, 1200, 1600, 1600, 3200, 3200, 4000, 4000, 5000, 5000, 6000},
		[]float64{-80, -80, -80, 0, 0, -3.5, -3.5, -6, -6, -9.54, -9.54, -12, -12, -18, -18, -20, -20, -22, -22, -23},
	),
	{PresetNFMRolloff, RateHigh}: bands(
		[]float64{0, 200, 200, 400, 400, 600, 600, 800, 800, 1200, 1200, 1600, 1600, 3200, 3200, 4000, 4000, 5000, 5000, 6000, 6000, nyquist},
		[]float64{-80, -80, -80, 0, 0, -3.5, -3.5, -6, -6, -9.54, -9.54, -12, -12, -18, -18, -20, -20, -22, -22, -23, -23, -28},
	),
	{PresetNFMFlat, RateLow}: bands(
		[]float64{0, 400, 400, 600, 600, 800, 800, 1200, 1200, 1600, 1600, 3200, 3200, 4000, 4000, 5000, 5000, 6000},
		[]float64{0, 0, 0, -3.5, -3.5, -6, -6, -9.54, -9.54, -12, -12, -18, -18, -20, -20, -22, -22, -23},
	),
	{PresetNFMFlat, RateHigh}: bands(
		[]float64{0, 400, 400, 600, 600, 800, 800, 1200, 1200, 1600, 1600, 3200, 3200, 4000, 4000, 5000, 5000, 6000, 6000, nyquist},
		[]float64{0, 0, 0, -3.5, -3.5, -6, -6, -9.54, -9.54, -12, -12, -18, -18, -20, -20, -22, -22, -23, -23, -28},
	),
	{PresetAM75us, RateLow}: bands(
		[]float64{0, 1000, 1000, 2000, 2000, 3000, 3000, 4000, 4000, 5000, 5000, nyquist},
		[]float64{0, -0.8, -0.8, -2.5, -2.5, -4.3, -4.3, -5.7, -5.7, -7.0, -7.0, -7.8},
	),
	{PresetAM75us, RateHigh}: bands(
		[]float64{0, 1000, 1000, 2000, 2000, 3000, 3000, 4000, 4000, 5000, 5000, 6000, 6000, 7000, 7000, 8000, 8000, 9000, 9000, nyquist},
		[]float64{0, -0.8, -0.8, -2.5, -2.5, -4.3, -4.3, -5.7, -5.7, -7.0, -7.0, -7.8, -7.8, -8.6, -8.6, -9.2, -9.2, -9.6, -9.6, -10.0},
	),
	{PresetAM50us, RateLow}: bands(
		[]float64{0, 1000, 1000, 2000, 2000, 3000, 3000, 4000, 4000, 5000, 5000, nyquist},
		[]float64{0, -0.4, -0.4, -1.3, -1.3, -2.4, -2.4, -3.5, -3.5, -4.5, -4.5, -5.4},
	),
	{PresetAM50us, RateHigh}: bands(
		[]float64{0, 1000, 1000, 2000, 2000, 3000, 3000, 4000, 4000, 5000, 5000, 6000, 6000, 7000, 7000, 8000, 8000, 9000, 9000, nyquist},
		[]float64{0, -0.4, -0.4, -1.3, -1.3, -2.4, -2.4, -3.5, -3.5, -4.5, -4.5, -5.4, -5.4, -6.1, -6.1, -6.7, -6.7, -7.2, -7.2, -7.6},
	),
	{PresetNotchTest, RateAny}: bands(
		[]float64{0, 1000, 1000, 2000, 2000, 3000, 3000, 4000, 4000, nyquist},
		[]float64{0, 0, 0, -20, -20, -20, -20, 0, 0, 0},
	),
	{PresetLowPass, RateAny}: bands(
		[]float64{0, 400, 400, 4000, 4000, nyquist},
		[]float64{0, 0, 0, -80, -80, -80},
	),
}

// bands zips parallel frequency and level columns.
func bands(freqs, levels []float64) []Breakpoint {
	if len(freqs) != len(levels) {
		panic(fmt.Sprintf("filterdesign: preset table has %d frequencies and %d levels", len(freqs), len(levels)))
	}
	out := make([]Breakpoint, len(freqs))
	for i := range freqs {
		out[i] = Breakpoint{Freq: freqs[i], LossDB: levels[i]}
	}
	return out
}

// PresetSpec returns the magnitude specification of preset at sampleRate,
// with the Nyquist placeholder resolved. The result is validated, so a rate
// too low for the table's breakpoints is a configuration error.
func PresetSpec(preset Preset, sampleRate float64) (MagnitudeSpec, error) {
	if !preset.Valid() {
		return MagnitudeSpec{}, fmt.Errorf("%w: unknown preset %d", ErrConfiguration, int(preset))
	}

	table, ok := presetTables[presetKey{preset, ClassifyRate(sampleRate)}]
	if !ok {
		table, ok = presetTables[presetKey{preset, RateAny}]
	}
	if !ok {
		return MagnitudeSpec{}, fmt.Errorf("%w: no table for preset %v", ErrConfiguration, preset)
	}

	points := make([]Breakpoint, len(table))
	for i, p := range table {
		if math.IsInf(p.Freq, 1) {
			p.Freq = sampleRate / halfDivisor
		}
		points[i] = p
	}

	spec := MagnitudeSpec{Points: points}
	if err := spec.Validate(sampleRate); err != nil {
		return MagnitudeSpec{}, fmt.Errorf("preset %v at %g Hz: %w", preset, sampleRate, configError(err))
	}
	return spec, nil
}
