package lsq

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNoJacobian is returned by Covariance for a result without a Jacobian.
var ErrNoJacobian = errors.New("result has no Jacobian")

// Covariance estimates the parameter covariance of a fit as
// pinv(JᵀJ)·s², with s² = ‖r‖²/(M-N) the residual variance.
//
// Singular directions of J are dropped from the pseudo-inverse. When there
// are no degrees of freedom (M <= N) every entry is +Inf.
func Covariance(res *Result) (*mat.SymDense, error) {
	if res == nil || res.Jacobian == nil {
		return nil, ErrNoJacobian
	}
	m, n := res.Jacobian.Dims()
	cov := mat.NewSymDense(n, nil)

	dof := m - n
	if dof <= 0 {
		for i := range n {
			for j := i; j < n; j++ {
				cov.SetSym(i, j, math.Inf(1))
			}
		}
		return cov, nil
	}

	var svd mat.SVD
	if !svd.Factorize(res.Jacobian, mat.SVDThin) {
		return nil, errors.New("SVD of Jacobian did not converge")
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	threshold := covarianceRankEps * float64(max(m, n)) * values[0]
	variance := 2 * res.Cost / float64(dof)

	// cov = V · diag(1/σ²) · Vᵀ · s²
	for i := range n {
		for j := i; j < n; j++ {
			var sum float64
			for k, sigma := range values {
				if sigma <= threshold {
					continue
				}
				sum += v.At(i, k) * v.At(j, k) / (sigma * sigma)
			}
			cov.SetSym(i, j, sum*variance)
		}
	}
	return cov, nil
}
