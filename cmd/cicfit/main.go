// Command cicfit fits the exponential compensation correction for one or two
// cascaded CIC decimators and prints (p1, p2) as a C array initializer.
//
// Usage:
//
//	cicfit                                   # wideband stage, then R2 = 10..40
//	cicfit -n1 5 -r1 8192 -n2 0              # one fit, single stage
//	cicfit -r2 24 -v                         # one fit with covariance
//	cicfit -sweep-from 16 -sweep-to 32       # sweep R2 only
//
// The fitted residual is the correction term alone, so the result does not
// depend on the stages: every row of a sweep shows the same near-zero p1 and
// the same p2.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	filterdesign "github.com/tphakala/go-filter-design"
	"github.com/tphakala/simd/cpu"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		n1        = flag.Int("n1", defaultN1, "Stage 1 section count")
		r1        = flag.Int("r1", defaultR1, "Stage 1 decimation ratio")
		m1        = flag.Int("m1", defaultM1, "Stage 1 differential delay")
		n2        = flag.Int("n2", defaultN2, "Stage 2 section count (0 = single stage)")
		r2        = flag.Int("r2", defaultR2, "Stage 2 decimation ratio")
		m2        = flag.Int("m2", defaultM2, "Stage 2 differential delay")
		points    = flag.Int("points", 0, "Frequency grid size (0 = 300)")
		p1        = flag.Float64("p1", filterdesign.DefaultInitialGuess[0], "Initial p1")
		p2        = flag.Float64("p2", filterdesign.DefaultInitialGuess[1], "Initial p2")
		sweepFrom = flag.Int("sweep-from", 0, "First R2 of a sweep (0 = no sweep)")
		sweepTo   = flag.Int("sweep-to", defaultSweepTo, "Last R2 of a sweep")
		maxIter   = flag.Int("max-iter", 0, "Solver iteration limit (0 = 200)")
		verbose   = flag.Bool("v", false, "Verbose output")
	)
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		log.Printf("SIMD: %s", cpu.Info())
	}

	cfg := filterdesign.CICConfig{
		Stage1:        filterdesign.CICStage{N: *n1, R: *r1, M: *m1},
		Stage2:        filterdesign.CICStage{N: *n2, R: *r2, M: *m2},
		GridSize:      *points,
		InitialGuess:  [2]float64{*p1, *p2},
		MaxIterations: *maxIter,
	}

	stageFlags := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n1", "r1", "m1", "n2", "r2", "m2":
			stageFlags = true
		}
	})

	out := &reporter{w: os.Stdout, verbose: *verbose}
	switch {
	case *sweepFrom > 0:
		return out.sweep(cfg, *sweepFrom, *sweepTo)
	case stageFlags:
		return out.single(cfg, "")
	default:
		return out.defaultRun(cfg)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nThe correction is fitted against the target it is added to, so (p1, p2)\n")
	fmt.Fprintf(os.Stderr, "does not depend on the stages; identical rows in a sweep are expected.\n")
}
