// Command firdesign designs one of the built-in FIR presets and prints its
// taps as a C array initializer.
//
// Usage:
//
//	firdesign -rate 48000 -preset 0
//	firdesign -rate 12000 -preset 2 -response 64       # also dump |H(f)| in dB
//	firdesign -rate 48000 -preset 5 -wav lowpass.wav   # export the impulse response
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	filterdesign "github.com/tphakala/go-filter-design"
	"github.com/tphakala/go-filter-design/internal/fir"
	"github.com/tphakala/go-filter-design/internal/mathutil"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		rate       = flag.Float64("rate", defaultSampleRate, "Sample rate in Hz (12000 selects the short preset tables)")
		preset     = flag.Int("preset", defaultPreset, "Preset id (0-5), see -list")
		list       = flag.Bool("list", false, "List the presets and exit")
		taps       = flag.Int("taps", filterdesign.DefaultNumTaps, "Number of taps (odd)")
		norm       = flag.Float64("norm", filterdesign.DefaultNormFreq, "Frequency in Hz normalized to 0 dB")
		legacyNorm = flag.Bool("legacy-norm", false, "Normalize by the sine projection alone (older tables)")
		kaiser     = flag.Float64("kaiser", 0, "Kaiser window beta applied before normalization (0 = none)")
		kaiserAtt  = flag.Float64("kaiser-att", 0, "Derive the Kaiser beta from a stopband attenuation in dB (overrides -kaiser)")
		response   = flag.Int("response", defaultResponse, "Print the magnitude response at this many frequencies")
		wavPath    = flag.String("wav", "", "Write the impulse response to a 32-bit PCM WAV file")
		verbose    = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *list {
		for _, p := range filterdesign.Presets() {
			fmt.Printf("%d\t%v\n", int(p), p)
		}
		return nil
	}

	cfg := filterdesign.FIRConfig{
		SampleRate: *rate,
		Preset:     filterdesign.Preset(*preset),
		NumTaps:    *taps,
		NormFreq:   *norm,
		KaiserBeta: *kaiser,
	}
	if *kaiserAtt > 0 {
		cfg.KaiserBeta = mathutil.KaiserBeta(*kaiserAtt)
	}
	if *legacyNorm {
		cfg.Normalization = filterdesign.NormalizeLegacySine
	}

	var wavRate int
	if *wavPath != "" {
		var err error
		if wavRate, err = wavSampleRate(*rate); err != nil {
			return err
		}
	}

	designer, err := filterdesign.NewFIRDesigner(cfg)
	if err != nil {
		return err
	}
	if *verbose {
		logSpec(designer)
	}

	coeffs, err := designer.Coefficients()
	if err != nil {
		if errors.Is(err, filterdesign.ErrDegenerateNormalization) {
			return fmt.Errorf("%w (try another -norm frequency)", err)
		}
		return err
	}

	table := &filterdesign.Table{
		Title:     designer.Name(),
		Values:    coeffs,
		Precision: filterdesign.FIRPrecision,
	}
	if _, err := table.WriteTo(os.Stdout); err != nil {
		return err
	}

	if *verbose {
		ref := designer.Config().NormFreq
		log.Printf("Gain at %g Hz: %.9f", ref, fir.MagnitudeAt(coeffs, ref, *rate))
	}

	if *response > 0 {
		if err := writeResponse(os.Stdout, coeffs, designer.Spec(), *rate, *response); err != nil {
			return err
		}
	}

	if *wavPath != "" {
		scale, err := writeImpulseWAV(*wavPath, coeffs, wavRate)
		if err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote %d taps to %s (scale %.6g)", len(coeffs), *wavPath, scale)
			if err := verifyImpulseWAV(*wavPath, coeffs, scale); err != nil {
				return err
			}
		}
	}

	return nil
}

func logSpec(d *filterdesign.FIRDesigner) {
	cfg := d.Config()
	log.Printf("Design: %s, %d taps, normalized at %g Hz", d.Name(), cfg.NumTaps, cfg.NormFreq)
	if cfg.KaiserBeta > 0 {
		log.Printf("Kaiser taper: beta %.4f", cfg.KaiserBeta)
	}
	for i, p := range d.Spec().Points {
		log.Printf("  breakpoint %2d: %8.1f Hz %7.2f dB", i, p.Freq, p.LossDB)
	}
}
