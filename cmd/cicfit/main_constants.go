package main

// Wideband front end, fitted as a single stage in the default run
const (
	wfN = 5
	wfR = 8192
	wfM = 1
)

// Default command-line flag values (narrowband two-stage chain)
const (
	defaultN1 = 3
	defaultR1 = 256
	defaultM1 = 1
	defaultN2 = 5
	defaultR2 = 40
	defaultM2 = 1
)

// Default sweep of the second-stage ratio
const (
	defaultSweepFrom = 10
	defaultSweepTo   = 40
)
