// Package testutil provides assertion helpers shared by the filter design tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for filter design tests.
const (
	CoefficientTolerance = 1e-12
	GainTolerance        = 1e-6
	SymmetryTolerance    = 1e-10
)

// AssertSymmetric verifies that s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := range n / 2 {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"not symmetric: s[%d]=%g != s[%d]=%g", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertFinite verifies that no element is NaN or Inf.
func AssertFinite(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(t, "non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertAllPositive verifies that every element is strictly greater than zero.
func AssertAllPositive(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if !(v > 0) {
			return assert.Fail(t, "value not positive", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertInRange verifies that value lies within [minVal, maxVal].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	lowOK := assert.GreaterOrEqual(t, value, minVal, msgAndArgs...)
	highOK := assert.LessOrEqual(t, value, maxVal, msgAndArgs...)
	return lowOK && highOK
}

// AssertNonDecreasing verifies that s[i] >= s[i-1] - tolerance for every i.
func AssertNonDecreasing(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1]-tolerance {
			return assert.Fail(t, "not non-decreasing",
				"s[%d]=%g < s[%d]=%g", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertBitIdentical verifies that two slices hold exactly the same float64 bit patterns.
func AssertBitIdentical(t *testing.T, expected, actual []float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if math.Float64bits(expected[i]) != math.Float64bits(actual[i]) {
			return assert.Fail(t, "values differ",
				"index %d: %v (0x%016x) != %v (0x%016x)", i,
				expected[i], math.Float64bits(expected[i]),
				actual[i], math.Float64bits(actual[i]))
		}
	}
	return true
}
