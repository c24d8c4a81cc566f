package cic

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model is the correction model H_target(f) + p1·exp(p2·(f - 0.5)) fitted
// against H_target itself. The residual therefore only depends on the
// correction term, and p1 = 0 is always an exact fit.
type Model struct {
	Grid   []float64
	Target []float64
}

// NumParams is the number of fitted parameters (p1, p2).
const NumParams = 2

// Eval writes the model response for params into dst.
func (m *Model) Eval(dst, params []float64) {
	p1, p2 := params[0], params[1]
	for i, f := range m.Grid {
		dst[i] = m.Target[i] + p1*math.Exp(p2*(f-correctionCenter))
	}
}

// Residuals writes model(f) - target(f) into dst. The target cancels
// exactly, so only the correction term is evaluated; forming the sum first
// would lose the correction to rounding wherever the target is large.
func (m *Model) Residuals(dst, params []float64) {
	p1, p2 := params[0], params[1]
	for i, f := range m.Grid {
		dst[i] = p1 * math.Exp(p2*(f-correctionCenter))
	}
}

// Jacobian writes ∂residual/∂(p1, p2) into dst, which must be len(Grid)×2.
func (m *Model) Jacobian(dst *mat.Dense, params []float64) {
	p1, p2 := params[0], params[1]
	for i, f := range m.Grid {
		d := f - correctionCenter
		e := math.Exp(p2 * d)
		dst.Set(i, 0, e)
		dst.Set(i, 1, p1*d*e)
	}
}
