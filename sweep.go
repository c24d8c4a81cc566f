package filterdesign

import (
	"fmt"
	"sync"
)

// SweepPoint is one fit of a second-stage ratio sweep.
type SweepPoint struct {
	// R2 is the second-stage decimation ratio.
	R2 int

	// OutputRate is ADCClock/(R1·R2) in Hz.
	OutputRate float64

	// Fit is the compensation fit for this ratio.
	Fit *CICFit
}

// Title labels the point the way the firmware table does.
func (p SweepPoint) Title() string {
	return fmt.Sprintf("R2=%d SampleRate: %.2f kHz", p.R2, p.OutputRate/hzPerKHz)
}

// Table renders the fitted parameters under Title.
func (p SweepPoint) Table() *Table {
	return p.Fit.Table(p.Title())
}

// SweepCIC fits base once for every second-stage ratio in [r2From, r2To],
// replacing base.Stage2.R. Each ratio is an independent problem and runs on
// its own goroutine. Results are ordered by R2; on failure the error of the
// lowest failing ratio is returned.
func SweepCIC(base CICConfig, r2From, r2To int) ([]SweepPoint, error) {
	if r2From < 1 || r2To < r2From {
		return nil, fmt.Errorf("%w: sweep range [%d, %d]", ErrConfiguration, r2From, r2To)
	}
	if base.Stage2.N == 0 {
		return nil, fmt.Errorf("%w: sweep needs a second stage (N2 > 0)", ErrConfiguration)
	}

	compensators := make([]*CICCompensator, 0, r2To-r2From+1)
	for r2 := r2From; r2 <= r2To; r2++ {
		cfg := base
		cfg.Stage2.R = r2
		c, err := NewCICCompensator(cfg)
		if err != nil {
			return nil, fmt.Errorf("R2=%d: %w", r2, err)
		}
		compensators = append(compensators, c)
	}

	points := make([]SweepPoint, len(compensators))
	errs := make([]error, len(compensators))

	var wg sync.WaitGroup
	for i, c := range compensators {
		wg.Add(1)
		go func(i int, c *CICCompensator) {
			defer wg.Done()

			r2 := c.cfg.Stage2.R
			fit, err := c.Fit()
			if err != nil {
				errs[i] = fmt.Errorf("R2=%d: %w", r2, err)
				return
			}
			points[i] = SweepPoint{
				R2:         r2,
				OutputRate: ADCClock / float64(c.cfg.Stage1.R*r2),
				Fit:        fit,
			}
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
