package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-filter-design/internal/fir"
)

// writeResponse prints the realized magnitude response of coeffs on points
// bins from DC to just below Nyquist, next to the level spec asks for.
func writeResponse(w io.Writer, coeffs []float64, spec fir.MagnitudeSpec, sampleRate float64, points int) error {
	resp := fir.Response(coeffs, points)
	gains := resp.MagnitudeDB()
	if _, err := fmt.Fprintf(w, "// %-12s %10s %10s\n", "freq (Hz)", "gain (dB)", "target (dB)"); err != nil {
		return err
	}
	for i, f := range resp.Frequencies {
		hz := f * sampleRate
		db := math.Max(gains[i], responseFloorDB)
		if _, err := fmt.Fprintf(w, "// %12.1f %10.3f %10.3f\n", hz, db, spec.LevelAt(hz)); err != nil {
			return err
		}
	}
	return nil
}

// wavSampleRate converts rate to the integer rate of a WAV header.
func wavSampleRate(rate float64) (int, error) {
	if !(rate > 0) || rate != math.Trunc(rate) || rate > math.MaxInt32 {
		return 0, fmt.Errorf("WAV export needs a whole-number sample rate, got %g Hz", rate)
	}
	return int(rate), nil
}

// writeImpulseWAV writes coeffs as a mono 32-bit PCM WAV file. The taps are
// scaled so the largest one hits full scale; the scale is returned.
func writeImpulseWAV(path string, coeffs []float64, sampleRate int) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errors.New("no coefficients to write")
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	peak := 0.0
	for _, c := range coeffs {
		peak = math.Max(peak, math.Abs(c))
	}
	if peak == 0 {
		return 0, errors.New("all coefficients are zero")
	}
	scale := maxInt32 / peak

	data := make([]int, len(coeffs))
	for i, c := range coeffs {
		data[i] = int(math.Round(c * scale))
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return scale, f.Close()
}

// readImpulseWAV reads a mono WAV file back into coefficients, dividing by
// scale.
func readImpulseWAV(path string, scale float64) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read samples: %w", err)
	}
	if buf.Format.NumChannels != wavChannels {
		return nil, 0, fmt.Errorf("expected mono WAV, got %d channels", buf.Format.NumChannels)
	}

	coeffs := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		coeffs[i] = float64(v) / scale
	}
	return coeffs, buf.Format.SampleRate, nil
}

// verifyImpulseWAV checks that path decodes back to coeffs within one LSB.
func verifyImpulseWAV(path string, coeffs []float64, scale float64) error {
	got, _, err := readImpulseWAV(path, scale)
	if err != nil {
		return err
	}
	if len(got) != len(coeffs) {
		return fmt.Errorf("round trip: %d samples, want %d", len(got), len(coeffs))
	}
	tol := 1 / scale
	for i := range coeffs {
		if math.Abs(got[i]-coeffs[i]) > tol {
			return fmt.Errorf("round trip: tap %d is %g, want %g", i, got[i], coeffs[i])
		}
	}
	return nil
}
