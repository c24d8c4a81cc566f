// Package lsq solves bounded nonlinear least-squares problems with a
// projected Levenberg-Marquardt iteration.
package lsq

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMaxIterations is returned when the iteration budget runs out before a
	// stationary point is reached.
	ErrMaxIterations = errors.New("iteration limit reached")

	// ErrStalled is returned when no damped step can reduce the cost and the
	// point is not stationary.
	ErrStalled = errors.New("no descent step found")

	// ErrInfeasibleBounds is returned when a lower bound exceeds its upper bound.
	ErrInfeasibleBounds = errors.New("infeasible bounds")

	// ErrInvalidStart is returned for a starting point outside the bounds or of
	// the wrong dimension.
	ErrInvalidStart = errors.New("invalid starting point")
)

// Problem describes residuals r(x) ∈ R^M over parameters x ∈ R^N.
type Problem struct {
	// M is the number of residuals.
	M int

	// Func writes the residuals at x into dst (len M).
	Func func(dst, x []float64)

	// Jac writes the M×N Jacobian of Func at x into dst. When nil a
	// forward-difference Jacobian is used.
	Jac func(dst *mat.Dense, x []float64)
}

// Bounds holds the box constraints. Nil slices leave the parameters unbounded.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Settings controls termination. Zero fields take the package defaults.
type Settings struct {
	MaxIterations int
	FTol          float64
	XTol          float64
	GTol          float64
}

// Status reports which criterion ended a successful run.
type Status int

const (
	// GradientConvergence: the projected gradient fell below GTol.
	GradientConvergence Status = iota + 1
	// FunctionConvergence: the relative cost reduction fell below FTol.
	FunctionConvergence
	// StepConvergence: the step length fell below XTol.
	StepConvergence
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case GradientConvergence:
		return "gradient tolerance"
	case FunctionConvergence:
		return "function tolerance"
	case StepConvergence:
		return "step tolerance"
	default:
		return "unknown"
	}
}

// Result is the outcome of Minimize. On error X holds the last accepted point.
type Result struct {
	X           []float64
	Residuals   []float64
	Cost        float64 // 0.5·‖r‖²
	Iterations  int
	Evaluations int
	Status      Status

	// Jacobian at X, kept for the covariance estimate.
	Jacobian *mat.Dense
}

// Minimize finds a local minimizer of 0.5·‖r(x)‖² inside bounds, starting at x0.
//
// Each iteration solves (JᵀJ + λ·diag(JᵀJ))·δ = -Jᵀr with a Cholesky
// factorization, projects x+δ onto the box and accepts the step only if the
// cost decreases; λ is relaxed after an accepted step and raised otherwise.
func Minimize(p Problem, x0 []float64, bounds Bounds, settings *Settings) (*Result, error) {
	s := settings.withDefaults()
	n := len(x0)

	if err := bounds.validate(n); err != nil {
		return nil, err
	}
	if p.M < 1 || p.Func == nil {
		return nil, fmt.Errorf("%w: problem has no residuals", ErrInvalidStart)
	}
	if !bounds.contains(x0) {
		return nil, fmt.Errorf("%w: %v outside bounds", ErrInvalidStart, x0)
	}

	solver := &lmSolver{
		problem: p,
		bounds:  bounds,
		n:       n,
		jac:     mat.NewDense(p.M, n, nil),
		rTry:    make([]float64, p.M),
	}

	res := &Result{
		X:         append([]float64(nil), x0...),
		Residuals: make([]float64, p.M),
	}
	p.Func(res.Residuals, res.X)
	res.Evaluations++
	res.Cost = halfSquaredNorm(res.Residuals)

	lambda := defaultInitialDamping
	grad := make([]float64, n)
	xTry := make([]float64, n)

	for res.Iterations = 1; res.Iterations <= s.MaxIterations; res.Iterations++ {
		solver.jacobian(res)
		solver.gradient(grad, res.Residuals)

		if floats.Norm(solver.projectGradient(grad, res.X), math.Inf(1)) <= s.GTol {
			res.Status = GradientConvergence
			res.Jacobian = solver.jac
			return res, nil
		}

		normal := solver.normalMatrix()

		for {
			step, ok := solver.dampedStep(normal, grad, lambda)
			if !ok {
				lambda *= dampingIncrease
				if lambda > maxDamping {
					res.Jacobian = solver.jac
					return res, fmt.Errorf("%w: damped system singular at %v", ErrStalled, res.X)
				}
				continue
			}

			for i := range xTry {
				xTry[i] = res.X[i] + step[i]
			}
			bounds.project(xTry)

			stepNorm := distance(xTry, res.X)
			small := stepNorm <= s.XTol*(s.XTol+floats.Norm(res.X, 2))

			p.Func(solver.rTry, xTry)
			res.Evaluations++
			costTry := halfSquaredNorm(solver.rTry)

			if costTry < res.Cost {
				reduction := res.Cost - costTry
				previous := res.Cost

				copy(res.X, xTry)
				copy(res.Residuals, solver.rTry)
				res.Cost = costTry
				lambda = math.Max(lambda/dampingDecrease, minDamping)

				switch {
				case reduction <= s.FTol*previous:
					res.Status = FunctionConvergence
				case small:
					res.Status = StepConvergence
				}
				if res.Status != 0 {
					solver.jacobian(res)
					res.Jacobian = solver.jac
					return res, nil
				}
				break
			}

			if small {
				res.Status = StepConvergence
				res.Jacobian = solver.jac
				return res, nil
			}

			lambda *= dampingIncrease
			if lambda > maxDamping {
				res.Jacobian = solver.jac
				return res, fmt.Errorf("%w: cost %g at %v", ErrStalled, res.Cost, res.X)
			}
		}
	}

	res.Iterations = s.MaxIterations
	res.Jacobian = solver.jac
	return res, fmt.Errorf("%w: %d iterations, cost %g", ErrMaxIterations, s.MaxIterations, res.Cost)
}

// lmSolver holds the per-run work buffers.
type lmSolver struct {
	problem Problem
	bounds  Bounds
	n       int
	jac     *mat.Dense
	rTry    []float64
}

func (l *lmSolver) jacobian(res *Result) {
	if l.problem.Jac != nil {
		l.problem.Jac(l.jac, res.X)
		return
	}
	fd.Jacobian(l.jac, l.problem.Func, res.X, &fd.JacobianSettings{
		OriginValue: res.Residuals,
	})
	res.Evaluations += l.n
}

// gradient writes Jᵀr into dst.
func (l *lmSolver) gradient(dst, r []float64) {
	g := mat.NewVecDense(l.n, dst)
	g.MulVec(l.jac.T(), mat.NewVecDense(len(r), r))
}

// projectGradient zeroes gradient components that point out of the box at
// active bounds. The returned slice is a copy.
func (l *lmSolver) projectGradient(grad, x []float64) []float64 {
	pg := append([]float64(nil), grad...)
	for i := range pg {
		if l.bounds.Lower != nil && x[i] <= l.bounds.Lower[i] && pg[i] > 0 {
			pg[i] = 0
		}
		if l.bounds.Upper != nil && x[i] >= l.bounds.Upper[i] && pg[i] < 0 {
			pg[i] = 0
		}
	}
	return pg
}

func (l *lmSolver) normalMatrix() *mat.SymDense {
	normal := mat.NewSymDense(l.n, nil)
	normal.SymOuterK(1, l.jac.T())
	return normal
}

// dampedStep solves (A + λ·D)·δ = -g. ok is false when the damped matrix is
// not positive definite.
func (l *lmSolver) dampedStep(a *mat.SymDense, grad []float64, lambda float64) (step []float64, ok bool) {
	damped := mat.NewSymDense(l.n, nil)
	damped.CopySym(a)
	for i := range l.n {
		d := math.Max(a.At(i, i), diagonalFloor)
		damped.SetSym(i, i, a.At(i, i)+lambda*d)
	}

	var chol mat.Cholesky
	if !chol.Factorize(damped) {
		return nil, false
	}

	rhs := make([]float64, l.n)
	floats.ScaleTo(rhs, -1, grad)

	var delta mat.VecDense
	if err := chol.SolveVecTo(&delta, mat.NewVecDense(l.n, rhs)); err != nil {
		return nil, false
	}
	return delta.RawVector().Data, true
}

func (s *Settings) withDefaults() Settings {
	out := Settings{
		MaxIterations: DefaultMaxIterations,
		FTol:          DefaultFTol,
		XTol:          DefaultXTol,
		GTol:          DefaultGTol,
	}
	if s == nil {
		return out
	}
	if s.MaxIterations > 0 {
		out.MaxIterations = s.MaxIterations
	}
	if s.FTol > 0 {
		out.FTol = s.FTol
	}
	if s.XTol > 0 {
		out.XTol = s.XTol
	}
	if s.GTol > 0 {
		out.GTol = s.GTol
	}
	return out
}

func (b Bounds) validate(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: no parameters", ErrInvalidStart)
	}
	if b.Lower != nil && len(b.Lower) != n {
		return fmt.Errorf("%w: %d lower bounds for %d parameters", ErrInvalidStart, len(b.Lower), n)
	}
	if b.Upper != nil && len(b.Upper) != n {
		return fmt.Errorf("%w: %d upper bounds for %d parameters", ErrInvalidStart, len(b.Upper), n)
	}
	if b.Lower == nil || b.Upper == nil {
		return nil
	}
	for i := range n {
		if b.Lower[i] > b.Upper[i] {
			return fmt.Errorf("%w: parameter %d has lower %g > upper %g",
				ErrInfeasibleBounds, i, b.Lower[i], b.Upper[i])
		}
	}
	return nil
}

func (b Bounds) contains(x []float64) bool {
	for i, v := range x {
		if math.IsNaN(v) {
			return false
		}
		if b.Lower != nil && v < b.Lower[i] {
			return false
		}
		if b.Upper != nil && v > b.Upper[i] {
			return false
		}
	}
	return true
}

func (b Bounds) project(x []float64) {
	for i := range x {
		if b.Lower != nil && x[i] < b.Lower[i] {
			x[i] = b.Lower[i]
		}
		if b.Upper != nil && x[i] > b.Upper[i] {
			x[i] = b.Upper[i]
		}
	}
}

func halfSquaredNorm(r []float64) float64 {
	return 0.5 * floats.Dot(r, r)
}

func distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
