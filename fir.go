package filterdesign

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-filter-design/internal/fir"
)

// Normalization selects how the gain at the reference frequency is measured.
type Normalization int

const (
	// NormalizeMagnitude scales the taps so |H(NormFreq)| is exactly 1.
	NormalizeMagnitude Normalization = iota

	// NormalizeLegacySine divides by the projection onto a sine sampled at
	// the tap times only. Older firmware tables were generated this way; the
	// resulting gain at NormFreq is not 1.
	NormalizeLegacySine
)

func (n Normalization) projection() (fir.Projection, error) {
	switch n {
	case NormalizeMagnitude:
		return fir.ProjectionMagnitude, nil
	case NormalizeLegacySine:
		return fir.ProjectionSine, nil
	default:
		return 0, fmt.Errorf("%w: unknown normalization %d", ErrConfiguration, int(n))
	}
}

// FIRConfig configures an FIR design. Zero fields take defaults.
type FIRConfig struct {
	// SampleRate in Hz.
	SampleRate float64

	// Preset selects the built-in specification. Ignored when Spec is set.
	Preset Preset

	// Spec is a custom magnitude specification.
	Spec *MagnitudeSpec

	// NumTaps is the (odd) filter length. Default 79.
	NumTaps int

	// NormFreq is the frequency normalized to 0 dB. Default 400 Hz.
	NormFreq float64

	// Normalization selects the gain measurement at NormFreq.
	Normalization Normalization

	// KaiserBeta tapers the least-squares taps with a Kaiser window before
	// normalization. Zero disables the taper.
	KaiserBeta float64
}

func (c FIRConfig) withDefaults() FIRConfig {
	if c.NumTaps == 0 {
		c.NumTaps = DefaultNumTaps
	}
	if c.NormFreq == 0 {
		c.NormFreq = DefaultNormFreq
	}
	return c
}

// FIRDesigner designs one FIR filter from a magnitude specification.
type FIRDesigner struct {
	cfg  FIRConfig
	spec MagnitudeSpec
}

// NewFIRDesigner resolves the magnitude table and checks the configuration.
// Every configuration error surfaces here, before any solve.
func NewFIRDesigner(cfg FIRConfig) (*FIRDesigner, error) {
	cfg = cfg.withDefaults()

	if !(cfg.SampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate %g", ErrConfiguration, cfg.SampleRate)
	}
	if cfg.NumTaps < 1 || cfg.NumTaps%2 == 0 {
		return nil, fmt.Errorf("%w: %d taps (must be odd)", ErrConfiguration, cfg.NumTaps)
	}
	if cfg.NormFreq < 0 || cfg.NormFreq > cfg.SampleRate/halfDivisor {
		return nil, fmt.Errorf("%w: normalization frequency %g Hz outside [0, %g]",
			ErrConfiguration, cfg.NormFreq, cfg.SampleRate/halfDivisor)
	}
	if cfg.KaiserBeta < 0 {
		return nil, fmt.Errorf("%w: kaiser beta %g", ErrConfiguration, cfg.KaiserBeta)
	}
	if _, err := cfg.Normalization.projection(); err != nil {
		return nil, err
	}

	var spec MagnitudeSpec
	if cfg.Spec != nil {
		spec = MagnitudeSpec{Points: append([]Breakpoint(nil), cfg.Spec.Points...)}
		if err := spec.Validate(cfg.SampleRate); err != nil {
			return nil, configError(err)
		}
	} else {
		var err error
		if spec, err = PresetSpec(cfg.Preset, cfg.SampleRate); err != nil {
			return nil, err
		}
	}

	return &FIRDesigner{cfg: cfg, spec: spec}, nil
}

// Name implements Designer.
func (d *FIRDesigner) Name() string {
	if d.cfg.Spec != nil {
		return fmt.Sprintf("custom @ %g Hz", d.cfg.SampleRate)
	}
	return fmt.Sprintf("%v @ %g Hz", d.cfg.Preset, d.cfg.SampleRate)
}

// Spec returns the resolved magnitude specification.
func (d *FIRDesigner) Spec() MagnitudeSpec {
	return d.spec
}

// Config returns the configuration with defaults applied.
func (d *FIRDesigner) Config() FIRConfig {
	return d.cfg
}

// Coefficients synthesizes and normalizes the filter taps.
func (d *FIRDesigner) Coefficients() ([]float64, error) {
	bands, desired, err := d.spec.Bands(d.cfg.SampleRate)
	if err != nil {
		return nil, configError(err)
	}

	taps, err := fir.LeastSquares(d.cfg.NumTaps, bands, desired)
	if err != nil {
		return nil, configError(err)
	}

	fir.ApplyKaiser(taps, d.cfg.KaiserBeta)

	mode, err := d.cfg.Normalization.projection()
	if err != nil {
		return nil, err
	}
	if err := fir.NormalizeAt(taps, d.cfg.NormFreq, d.cfg.SampleRate, mode); err != nil {
		if errors.Is(err, fir.ErrDegenerate) {
			return nil, fmt.Errorf("%w: %w", ErrDegenerateNormalization, err)
		}
		return nil, configError(err)
	}
	return taps, nil
}

// Design implements Designer.
func (d *FIRDesigner) Design() (*Table, error) {
	taps, err := d.Coefficients()
	if err != nil {
		return nil, err
	}
	return &Table{
		Title:     d.Name(),
		Values:    taps,
		Precision: FIRPrecision,
	}, nil
}

// DesignFIRFilter designs preset at sampleRate with the default 79 taps,
// normalized to 0 dB at 400 Hz.
func DesignFIRFilter(sampleRate float64, preset Preset) ([]float64, error) {
	d, err := NewFIRDesigner(FIRConfig{SampleRate: sampleRate, Preset: preset})
	if err != nil {
		return nil, err
	}
	return d.Coefficients()
}
