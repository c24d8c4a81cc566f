package lsq

// Default solver settings
const (
	DefaultMaxIterations = 200
	DefaultFTol          = 1e-8
	DefaultXTol          = 1e-8
	DefaultGTol          = 1e-8

	defaultInitialDamping = 1e-3
)

// Damping schedule
const (
	dampingDecrease = 10.0
	dampingIncrease = 10.0
	minDamping      = 1e-15
	maxDamping      = 1e16

	// Floor for the Marquardt scaling of a parameter whose Jacobian column vanishes.
	diagonalFloor = 1e-12
)

// Rank cutoff for the covariance pseudo-inverse, relative to the largest singular value.
const covarianceRankEps = 2.220446049250313e-16
