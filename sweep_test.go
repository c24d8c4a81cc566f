package filterdesign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-filter-design/internal/testutil"
)

func TestSweepCIC(t *testing.T) {
	base := CICConfig{Stage1: ddcStage1, Stage2: CICStage{N: 5, M: 1}}

	points, err := SweepCIC(base, 10, 40)
	require.NoError(t, err)
	require.Len(t, points, 31)

	for i, p := range points {
		assert.Equal(t, 10+i, p.R2)
		assert.InDelta(t, ADCClock/float64(256*p.R2), p.OutputRate, 1e-9)
		require.NotNil(t, p.Fit)
		testutil.AssertInRange(t, p.Fit.Params[0], minP1, maxP1, "p1 at R2=%d", p.R2)
		testutil.AssertInRange(t, p.Fit.Params[1], minP2, maxP2, "p2 at R2=%d", p.R2)
	}

	// The residual does not involve the target, so every ratio lands on the
	// same parameters.
	for _, p := range points[1:] {
		testutil.AssertBitIdentical(t, points[0].Fit.Params[:], p.Fit.Params[:])
	}

	assert.Equal(t, "R2=40 SampleRate: 12.00 kHz", points[30].Title())
	assert.Equal(t, "R2=10 SampleRate: 48.00 kHz", points[0].Title())
}

func TestSweepCIC_MatchesSequentialFits(t *testing.T) {
	base := CICConfig{Stage1: ddcStage1, Stage2: CICStage{N: 5, M: 1}}

	points, err := SweepCIC(base, 20, 24)
	require.NoError(t, err)

	for _, p := range points {
		fit, err := FitCICCompensation(ddcStage1, CICStage{N: 5, R: p.R2, M: 1}, 0, [2]float64{})
		require.NoError(t, err)
		testutil.AssertBitIdentical(t, fit.Params[:], p.Fit.Params[:])
	}
}

func TestSweepCIC_Errors(t *testing.T) {
	base := CICConfig{Stage1: ddcStage1, Stage2: CICStage{N: 5, M: 1}}

	_, err := SweepCIC(base, 0, 10)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = SweepCIC(base, 20, 10)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = SweepCIC(CICConfig{Stage1: ddcStage1}, 10, 20)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = SweepCIC(CICConfig{Stage1: ddcStage1, Stage2: CICStage{N: 5, M: 0}}, 10, 20)
	require.ErrorIs(t, err, ErrConfiguration)

	budget := base
	budget.MaxIterations = 1
	_, err = SweepCIC(budget, 10, 12)
	require.ErrorIs(t, err, ErrConvergence)
	assert.Contains(t, err.Error(), "R2=10")
}
