package cic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-filter-design/internal/mathutil"
	"github.com/tphakala/go-filter-design/internal/testutil"
)

func TestStage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stage   Stage
		wantErr bool
	}{
		{"typical", Stage{N: 3, R: 256, M: 1}, false},
		{"disabled", Stage{}, false},
		{"disabled ignores ratio", Stage{N: 0, R: -4, M: 0}, false},
		{"negative count", Stage{N: -1, R: 8, M: 1}, true},
		{"zero ratio", Stage{N: 5, R: 0, M: 1}, true},
		{"zero delay", Stage{N: 5, R: 40, M: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stage.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGrid(t *testing.T) {
	grid, err := Grid(DefaultGridSize)
	require.NoError(t, err)
	require.Len(t, grid, DefaultGridSize)

	assert.Equal(t, GridEpsilon, grid[0], "first sample must avoid f = 0")
	assert.Equal(t, GridNyquist, grid[len(grid)-1])

	_, err = Grid(1)
	require.ErrorIs(t, err, ErrInvalidGrid)
}

func TestTarget_SingleStageMatchesClosedForm(t *testing.T) {
	grid, err := Grid(64)
	require.NoError(t, err)

	stage := Stage{N: 2, R: 1, M: 1}
	target, err := Target(grid, stage)
	require.NoError(t, err)

	for i, f := range grid {
		want := math.Pow(mathutil.Sinc(f), -2)
		assert.InEpsilon(t, want, target[i], 1e-12, "f=%v", f)
	}
}

func TestTarget_DisabledSecondStageIsNeutral(t *testing.T) {
	grid, err := Grid(DefaultGridSize)
	require.NoError(t, err)

	stage1 := Stage{N: 5, R: 8192, M: 1}

	only, err := Target(grid, stage1)
	require.NoError(t, err)

	withDisabled, err := Target(grid, stage1, Stage{N: 0, R: 0, M: 0})
	require.NoError(t, err)

	testutil.AssertBitIdentical(t, only, withDisabled)
}

func TestTarget_FiniteAndPositive(t *testing.T) {
	grid, err := Grid(DefaultGridSize)
	require.NoError(t, err)

	cases := []struct {
		name   string
		stages []Stage
	}{
		{"no stages", nil},
		{"wideband single", []Stage{{N: 5, R: 8192, M: 1}}},
		{"odd order crossing nulls", []Stage{{N: 3, R: 256, M: 1}}},
		{"two stage", []Stage{{N: 3, R: 256, M: 1}, {N: 5, R: 40, M: 1}}},
		{"differential delay two", []Stage{{N: 4, R: 16, M: 2}, {N: 1, R: 3, M: 1}}},
		{"both disabled", []Stage{{}, {}}},
		{"high order saturates", []Stage{{N: 40, R: 256, M: 1}}},
		{"high order two stage", []Stage{{N: 20, R: 256, M: 1}, {N: 20, R: 40, M: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, err := Target(grid, tc.stages...)
			require.NoError(t, err)
			require.Len(t, target, len(grid))
			testutil.AssertFinite(t, target)
			testutil.AssertAllPositive(t, target)
		})
	}
}

func TestTarget_TwoStagesMultiply(t *testing.T) {
	grid, err := Grid(32)
	require.NoError(t, err)

	s1 := Stage{N: 3, R: 4, M: 1}
	s2 := Stage{N: 2, R: 3, M: 1}

	t1, err := Target(grid, s1)
	require.NoError(t, err)
	t2, err := Target(grid, s2)
	require.NoError(t, err)
	both, err := Target(grid, s1, s2)
	require.NoError(t, err)

	for i := range grid {
		assert.InEpsilon(t, t1[i]*t2[i], both[i], 1e-12)
	}
}

func TestTarget_Errors(t *testing.T) {
	grid, err := Grid(16)
	require.NoError(t, err)

	_, err = Target(grid, Stage{N: -2, R: 8, M: 1})
	require.ErrorIs(t, err, ErrInvalidStage)

	_, err = Target([]float64{0.1, 0.1, 0.2}, Stage{N: 1, R: 2, M: 1})
	require.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Target([]float64{0.1}, Stage{N: 1, R: 2, M: 1})
	require.ErrorIs(t, err, ErrInvalidGrid)
}

func TestTarget_HighOrderSaturates(t *testing.T) {
	grid, err := Grid(DefaultGridSize)
	require.NoError(t, err)

	target, err := Target(grid, Stage{N: 40, R: 256, M: 1})
	require.NoError(t, err)

	// 256·0.5 = 128 is a sinc null, so the last sample hits the floor.
	assert.Equal(t, math.MaxFloat64, target[len(target)-1])
	testutil.AssertFinite(t, target)
	testutil.AssertAllPositive(t, target)

	// Below the first null the values are untouched by the clamp.
	low, err := Target(grid[:2], Stage{N: 40, R: 256, M: 1})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pow(mathutil.Sinc(256*grid[1]), -40), low[1], 1e-12)
}
