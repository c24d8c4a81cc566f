package fir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_MatchesDirectEvaluation(t *testing.T) {
	taps, err := LeastSquares(79, []float64{0, 0.2, 0.3, 1}, []float64{1, 1, 0, 0})
	require.NoError(t, err)

	resp := Response(taps, 256)
	require.Len(t, resp.Frequencies, 256)
	require.Len(t, resp.Magnitude, 256)
	require.Len(t, resp.Phase, 256)

	for k := 0; k < 256; k += 17 {
		f := resp.Frequencies[k]
		assert.InDelta(t, MagnitudeAt(taps, f, 1), resp.Magnitude[k], 1e-9, "bin %d", k)
	}
}

func TestResponse_ImpulseIsFlat(t *testing.T) {
	resp := Response([]float64{0, 0, 1, 0, 0}, 0)
	require.Len(t, resp.Magnitude, defaultResponsePoints)

	for _, m := range resp.Magnitude {
		assert.InDelta(t, 1.0, m, 1e-12)
	}
	for _, db := range resp.MagnitudeDB() {
		assert.InDelta(t, 0.0, db, 1e-9)
	}
}

func TestResponse_LongFilterShortGrid(t *testing.T) {
	taps := make([]float64, 101)
	taps[50] = 1
	resp := Response(taps, 16)
	require.Len(t, resp.Frequencies, 16)
	assert.InDelta(t, 15.0/32, resp.Frequencies[15], 1e-12)
}

func TestMagnitudeAt(t *testing.T) {
	// Two-tap average: |H(f)| = |cos(πf/fs)|.
	taps := []float64{0.5, 0.5}
	for _, f := range []float64{0, 1000, 3000, 5500} {
		assert.InDelta(t, math.Abs(math.Cos(math.Pi*f/12000)), MagnitudeAt(taps, f, 12000), 1e-12)
	}
	assert.Zero(t, MagnitudeAt(nil, 100, 12000))
}

func TestKaiserWindow(t *testing.T) {
	w := KaiserWindow(21, 8)
	require.Len(t, w, 21)
	assert.InDelta(t, 1.0, w[10], 1e-15)
	for i := range 10 {
		assert.InDelta(t, w[i], w[20-i], 1e-15)
		assert.Less(t, w[i], w[i+1])
	}

	assert.Empty(t, KaiserWindow(0, 5))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 5))
}

func TestApplyKaiser(t *testing.T) {
	taps := []float64{1, 1, 1, 1, 1}
	ApplyKaiser(taps, 0)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, taps, "beta 0 is a no-op")

	ApplyKaiser(taps, 5)
	assert.InDeltaSlice(t, KaiserWindow(5, 5), taps, 1e-15)
}
