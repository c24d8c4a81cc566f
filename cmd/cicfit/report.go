package main

import (
	"fmt"
	"io"
	"log"

	filterdesign "github.com/tphakala/go-filter-design"
)

// reporter writes fitted tables to w and, in verbose mode, fit diagnostics
// to the log.
type reporter struct {
	w       io.Writer
	verbose bool
}

// single fits cfg once. An empty title uses the compensator's name.
func (r *reporter) single(cfg filterdesign.CICConfig, title string) error {
	c, err := filterdesign.NewCICCompensator(cfg)
	if err != nil {
		return err
	}
	if title == "" {
		title = c.Name()
	}

	fit, err := c.Fit()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	r.logFit(title, fit)

	_, err = fit.Table(title).WriteTo(r.w)
	return err
}

// sweep fits cfg for every R2 in [from, to].
func (r *reporter) sweep(cfg filterdesign.CICConfig, from, to int) error {
	points, err := filterdesign.SweepCIC(cfg, from, to)
	if err != nil {
		return err
	}
	for _, p := range points {
		r.logFit(p.Title(), p.Fit)
		if _, err := p.Table().WriteTo(r.w); err != nil {
			return err
		}
	}
	return nil
}

// defaultRun prints the wideband single-stage fit followed by the default
// second-stage sweep of the narrowband chain. Grid, guess and iteration
// settings are taken from base; the stages are fixed.
func (r *reporter) defaultRun(base filterdesign.CICConfig) error {
	wf := base
	wf.Stage1 = filterdesign.CICStage{N: wfN, R: wfR, M: wfM}
	wf.Stage2 = filterdesign.CICStage{}
	if err := r.single(wf, "WF CICF"); err != nil {
		return err
	}

	nb := base
	nb.Stage1 = filterdesign.CICStage{N: defaultN1, R: defaultR1, M: defaultM1}
	nb.Stage2 = filterdesign.CICStage{N: defaultN2, R: defaultR2, M: defaultM2}
	return r.sweep(nb, defaultSweepFrom, defaultSweepTo)
}

func (r *reporter) logFit(title string, fit *filterdesign.CICFit) {
	if !r.verbose {
		return
	}
	log.Printf("%s: p = (%g, %g), cost %.3g, %d iterations",
		title, fit.Params[0], fit.Params[1], fit.Cost, fit.Iterations)
	log.Printf("  covariance [[%.3g, %.3g], [%.3g, %.3g]]",
		fit.Covariance[0][0], fit.Covariance[0][1], fit.Covariance[1][0], fit.Covariance[1][1])
}
