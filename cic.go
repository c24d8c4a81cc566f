package filterdesign

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-filter-design/internal/cic"
	"github.com/tphakala/go-filter-design/internal/lsq"
)

// CICStage describes one CIC decimator. A stage with N == 0 is absent.
type CICStage struct {
	N int // number of integrator/comb sections
	R int // decimation ratio
	M int // differential delay
}

func (s CICStage) internal() cic.Stage {
	return cic.Stage{N: s.N, R: s.R, M: s.M}
}

// String implements fmt.Stringer.
func (s CICStage) String() string {
	return s.internal().String()
}

// ParamBounds holds box constraints for (p1, p2).
type ParamBounds struct {
	Lower [2]float64
	Upper [2]float64
}

// DefaultBounds keeps p1 in [-10, 0] and p2 in [0, 100].
var DefaultBounds = ParamBounds{
	Lower: [2]float64{minP1, minP2},
	Upper: [2]float64{maxP1, maxP2},
}

// DefaultInitialGuess is the solver starting point (p1, p2).
var DefaultInitialGuess = [2]float64{defaultInitialP1, defaultInitialP2}

// CICConfig configures a compensation fit. Zero fields take defaults.
type CICConfig struct {
	// Stage1 is the first (highest rate) CIC stage.
	Stage1 CICStage

	// Stage2 is the optional second stage; N == 0 leaves it out.
	Stage2 CICStage

	// GridSize is the number of frequency samples in (0, 0.5]. Default 300.
	GridSize int

	// InitialGuess is the starting (p1, p2). The zero value selects (-3, 30).
	InitialGuess [2]float64

	// Bounds overrides DefaultBounds when non-nil.
	Bounds *ParamBounds

	// MaxIterations caps the solver. Default 200.
	MaxIterations int
}

func (c CICConfig) withDefaults() CICConfig {
	if c.GridSize == 0 {
		c.GridSize = cic.DefaultGridSize
	}
	if c.InitialGuess == [2]float64{} {
		c.InitialGuess = DefaultInitialGuess
	}
	if c.Bounds == nil {
		b := DefaultBounds
		c.Bounds = &b
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = lsq.DefaultMaxIterations
	}
	return c
}

// Validate checks the configuration without running the fit.
func (c CICConfig) Validate() error {
	c = c.withDefaults()
	if err := c.Stage1.internal().Validate(); err != nil {
		return configError(fmt.Errorf("stage 1: %w", err))
	}
	if err := c.Stage2.internal().Validate(); err != nil {
		return configError(fmt.Errorf("stage 2: %w", err))
	}
	if c.GridSize < 0 {
		return configError(fmt.Errorf("%w: %d points", cic.ErrInvalidGrid, c.GridSize))
	}
	for i := range cic.NumParams {
		lo, hi := c.Bounds.Lower[i], c.Bounds.Upper[i]
		if !(lo <= hi) {
			return fmt.Errorf("%w: parameter %d bounds [%g, %g]", ErrConfiguration, i+1, lo, hi)
		}
		if g := c.InitialGuess[i]; !(g >= lo && g <= hi) {
			return fmt.Errorf("%w: initial p%d = %g outside [%g, %g]", ErrConfiguration, i+1, g, lo, hi)
		}
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d", ErrConfiguration, c.MaxIterations)
	}
	return nil
}

// CICFit is the result of a compensation fit.
type CICFit struct {
	// Params holds (p1, p2).
	Params [2]float64

	// Covariance is the 2×2 parameter covariance estimate.
	Covariance [2][2]float64

	// Cost is 0.5·Σ residual² at Params.
	Cost float64

	// Iterations used by the solver.
	Iterations int

	// Grid and Target are the frequency samples and the ideal response the
	// correction was fitted on.
	Grid   []float64
	Target []float64
}

// Model evaluates the fitted model H_target(f) + p1·exp(p2·(f-0.5)) on Grid.
func (f *CICFit) Model() []float64 {
	m := &cic.Model{Grid: f.Grid, Target: f.Target}
	out := make([]float64, len(f.Grid))
	m.Eval(out, f.Params[:])
	return out
}

// Table renders the parameters the way the firmware table lists them.
func (f *CICFit) Table(title string) *Table {
	return &Table{
		Title:         title,
		Values:        f.Params[:],
		Precision:     CICPrecision,
		Indent:        "\t",
		TrailingComma: true,
	}
}

// CICCompensator fits the compensation correction for a CIC cascade.
type CICCompensator struct {
	cfg   CICConfig
	Title string
}

// NewCICCompensator validates cfg and returns a compensator.
func NewCICCompensator(cfg CICConfig) (*CICCompensator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CICCompensator{cfg: cfg.withDefaults()}, nil
}

// Name implements Designer.
func (c *CICCompensator) Name() string {
	if c.cfg.Stage2.N == 0 {
		return fmt.Sprintf("CICF %v", c.cfg.Stage1)
	}
	return fmt.Sprintf("CICF %v | %v", c.cfg.Stage1, c.cfg.Stage2)
}

// Design implements Designer.
func (c *CICCompensator) Design() (*Table, error) {
	fit, err := c.Fit()
	if err != nil {
		return nil, err
	}
	title := c.Title
	if title == "" {
		title = c.Name()
	}
	return fit.Table(title), nil
}

// Fit builds the target response and solves for (p1, p2).
func (c *CICCompensator) Fit() (*CICFit, error) {
	cfg := c.cfg

	grid, err := cic.Grid(cfg.GridSize)
	if err != nil {
		return nil, configError(err)
	}
	target, err := cic.Target(grid, cfg.Stage1.internal(), cfg.Stage2.internal())
	if err != nil {
		return nil, configError(err)
	}

	model := &cic.Model{Grid: grid, Target: target}
	problem := lsq.Problem{
		M:    len(grid),
		Func: model.Residuals,
		Jac:  model.Jacobian,
	}
	bounds := lsq.Bounds{
		Lower: cfg.Bounds.Lower[:],
		Upper: cfg.Bounds.Upper[:],
	}

	res, err := lsq.Minimize(problem, cfg.InitialGuess[:], bounds, &lsq.Settings{
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		return nil, fitError(err, res, cfg.InitialGuess)
	}

	cov, err := lsq.Covariance(res)
	if err != nil {
		return nil, fmt.Errorf("covariance: %w", err)
	}

	fit := &CICFit{
		Params:     [2]float64{res.X[0], res.X[1]},
		Cost:       res.Cost,
		Iterations: res.Iterations,
		Grid:       grid,
		Target:     target,
	}
	for i := range cic.NumParams {
		for j := range cic.NumParams {
			fit.Covariance[i][j] = cov.At(i, j)
		}
	}
	return fit, nil
}

// fitError classifies a solver error. A bad starting point or empty box is
// a configuration problem; everything else is a failed fit.
func fitError(err error, res *lsq.Result, guess [2]float64) error {
	if errors.Is(err, lsq.ErrInvalidStart) || errors.Is(err, lsq.ErrInfeasibleBounds) {
		return configError(err)
	}
	ce := &ConvergenceError{Last: guess[:], Err: err}
	if res != nil {
		ce.Last = append([]float64(nil), res.X...)
		ce.Iterations = res.Iterations
	}
	return ce
}

// FitCICCompensation fits the correction for stage1 followed by stage2
// (N == 0 for a single stage) on gridSize points from initialGuess. Zero
// gridSize or initialGuess select the defaults.
func FitCICCompensation(stage1, stage2 CICStage, gridSize int, initialGuess [2]float64) (*CICFit, error) {
	c, err := NewCICCompensator(CICConfig{
		Stage1:       stage1,
		Stage2:       stage2,
		GridSize:     gridSize,
		InitialGuess: initialGuess,
	})
	if err != nil {
		return nil, err
	}
	return c.Fit()
}
