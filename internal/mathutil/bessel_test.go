package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"Zero", 0, 1},
		{"Half", 0.5, 1.0634833707413236},
		{"One", 1, 1.2660658777520082},
		{"Two", 2, 2.2795853023360673},
		{"Five", 5, 27.239871823604442},
		{"Ten", 10, 2815.716628466254},
		{"Negative one", -1, 1.2660658777520082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BesselI0(tt.x)
			assert.InEpsilon(t, tt.want, got, 1e-12)
		})
	}
}

func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.25; x <= 15; x += 0.25 {
		cur := BesselI0(x)
		assert.Greater(t, cur, prev, "I0 must increase at x=%v", x)
		prev = cur
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		want        float64
	}{
		{"below medium threshold", 15, 0},
		{"medium", 40, 3.3953210522614574},
		{"high", 80, 0.1102 * 71.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KaiserBeta(tt.attenuation), 1e-9)
		})
	}
}
