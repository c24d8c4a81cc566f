package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinc(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"origin", 0, 1},
		{"half", 0.5, 2 / math.Pi},
		{"negative half", -0.5, 2 / math.Pi},
		{"first zero", 1, 0},
		{"second zero", 2, 0},
		{"one and a half", 1.5, -2 / (3 * math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Sinc(tt.x), 1e-15)
		})
	}
}

func TestSinc_NearOriginIsContinuous(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(1e-9), 1e-15)
	assert.InDelta(t, 1.0, Sinc(-1e-13), 1e-15)
}

func TestLinspace(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		grid := Linspace(1e-8, 0.5, 300)
		require.Len(t, grid, 300)
		assert.Equal(t, 1e-8, grid[0])
		assert.Equal(t, 0.5, grid[299])
		for i := 1; i < len(grid); i++ {
			assert.Greater(t, grid[i], grid[i-1], "grid not strictly increasing at %d", i)
		}
	})

	t.Run("uniform step", func(t *testing.T) {
		grid := Linspace(0, 1, 5)
		assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, grid, 1e-15)
	})

	t.Run("degenerate sizes", func(t *testing.T) {
		assert.Empty(t, Linspace(0, 1, 0))
		assert.Empty(t, Linspace(0, 1, -3))
		assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	})
}

func TestDBConversion(t *testing.T) {
	tests := []struct {
		db     float64
		linear float64
	}{
		{0, 1},
		{-20, 0.1},
		{-80, 1e-4},
		{20, 10},
		{-6.0206, 0.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.linear, DBToLinear(tt.db), 1e-5, "DBToLinear(%v)", tt.db)
		assert.InDelta(t, tt.db, LinearToDB(tt.linear), 1e-3, "LinearToDB(%v)", tt.linear)
	}

	assert.InDelta(t, -200.0, LinearToDB(0), 1e-9, "zero magnitude should clamp")
}
