package filterdesign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-filter-design/internal/lsq"
	"github.com/tphakala/go-filter-design/internal/testutil"
)

var (
	wfStage   = CICStage{N: 5, R: 8192, M: 1}
	ddcStage1 = CICStage{N: 3, R: 256, M: 1}
)

func TestFitCICCompensation_ParamsWithinBounds(t *testing.T) {
	for r2 := 10; r2 <= 40; r2++ {
		fit, err := FitCICCompensation(ddcStage1, CICStage{N: 5, R: r2, M: 1}, 0, [2]float64{})
		require.NoError(t, err, "R2=%d", r2)

		testutil.AssertInRange(t, fit.Params[0], minP1, maxP1, "p1 at R2=%d", r2)
		testutil.AssertInRange(t, fit.Params[1], minP2, maxP2, "p2 at R2=%d", r2)
		testutil.AssertFinite(t, fit.Target)
		testutil.AssertAllPositive(t, fit.Target)
	}
}

func TestFitCICCompensation_SingleStage(t *testing.T) {
	single, err := FitCICCompensation(wfStage, CICStage{}, 0, [2]float64{})
	require.NoError(t, err)

	// A disabled second stage with junk ratio and delay must not change anything.
	junk, err := FitCICCompensation(wfStage, CICStage{N: 0, R: 7, M: 3}, 0, [2]float64{})
	require.NoError(t, err)

	testutil.AssertBitIdentical(t, single.Target, junk.Target)
	testutil.AssertBitIdentical(t, single.Params[:], junk.Params[:])
	assert.Len(t, single.Grid, 300)
}

func TestFitCICCompensation_DegenerateOptimum(t *testing.T) {
	fit, err := FitCICCompensation(ddcStage1, CICStage{N: 5, R: 20, M: 1}, 0, [2]float64{})
	require.NoError(t, err)

	// The target cancels out of the residual, so the fit collapses towards p1 = 0.
	assert.InDelta(t, 0, fit.Params[0], 1e-6)
	assert.Less(t, fit.Cost, 1e-12)

	model := fit.Model()
	require.Len(t, model, len(fit.Target))
	for i := range model {
		assert.InEpsilon(t, fit.Target[i], model[i], 1e-9, "sample %d", i)
	}

	assert.Equal(t, fit.Covariance[0][1], fit.Covariance[1][0])
	assert.GreaterOrEqual(t, fit.Covariance[0][0], 0.0)
}

func TestFitCICCompensation_Deterministic(t *testing.T) {
	a, err := FitCICCompensation(ddcStage1, CICStage{N: 5, R: 25, M: 1}, 0, [2]float64{})
	require.NoError(t, err)
	b, err := FitCICCompensation(ddcStage1, CICStage{N: 5, R: 25, M: 1}, 0, [2]float64{})
	require.NoError(t, err)

	testutil.AssertBitIdentical(t, a.Params[:], b.Params[:])
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestCICConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  CICConfig
	}{
		{"negative stage 1 count", CICConfig{Stage1: CICStage{N: -1, R: 8, M: 1}}},
		{"negative stage 2 count", CICConfig{Stage1: wfStage, Stage2: CICStage{N: -2, R: 8, M: 1}}},
		{"zero ratio", CICConfig{Stage1: CICStage{N: 3, R: 0, M: 1}}},
		{"zero delay", CICConfig{Stage1: CICStage{N: 3, R: 16, M: 0}}},
		{"grid too short", CICConfig{Stage1: wfStage, GridSize: 1}},
		{"negative grid", CICConfig{Stage1: wfStage, GridSize: -5}},
		{"guess outside bounds", CICConfig{Stage1: wfStage, InitialGuess: [2]float64{1, 30}}},
		{"infeasible bounds", CICConfig{
			Stage1: wfStage,
			Bounds: &ParamBounds{Lower: [2]float64{0, 50}, Upper: [2]float64{-1, 10}},
		}},
		{"negative iteration budget", CICConfig{Stage1: wfStage, MaxIterations: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cfg.Validate(), ErrConfiguration)

			_, err := NewCICCompensator(tt.cfg)
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestCICCompensator_IterationBudget(t *testing.T) {
	c, err := NewCICCompensator(CICConfig{
		Stage1:        ddcStage1,
		Stage2:        CICStage{N: 5, R: 20, M: 1},
		MaxIterations: 1,
	})
	require.NoError(t, err)

	_, err = c.Fit()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConvergence)
	require.ErrorIs(t, err, lsq.ErrMaxIterations)
	assert.NotErrorIs(t, err, ErrConfiguration)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Iterations)
	require.Len(t, ce.Last, 2)
	testutil.AssertInRange(t, ce.Last[0], minP1, maxP1)
	testutil.AssertInRange(t, ce.Last[1], minP2, maxP2)
}

func TestCICCompensator_Design(t *testing.T) {
	c, err := NewCICCompensator(CICConfig{Stage1: wfStage})
	require.NoError(t, err)
	assert.Equal(t, "CICF N=5, R=8192, M=1", c.Name())

	c.Title = "WF CICF"
	table, err := c.Design()
	require.NoError(t, err)

	assert.Equal(t, "WF CICF", table.Title)
	assert.Equal(t, CICPrecision, table.Precision)
	assert.Regexp(t, `^// WF CICF\n\t-?\d+\.\d{4}, \d+\.\d{4},\n$`, table.String())

	two, err := NewCICCompensator(CICConfig{Stage1: ddcStage1, Stage2: CICStage{N: 5, R: 40, M: 1}})
	require.NoError(t, err)
	assert.Equal(t, "CICF N=3, R=256, M=1 | N=5, R=40, M=1", two.Name())
}

func TestFitCICCompensation_HighOrderTargetStaysFinite(t *testing.T) {
	fit, err := FitCICCompensation(CICStage{N: 40, R: 256, M: 1}, CICStage{}, 0, [2]float64{})
	require.NoError(t, err)

	testutil.AssertFinite(t, fit.Target)
	testutil.AssertAllPositive(t, fit.Target)
	testutil.AssertFinite(t, fit.Model())
}
