package filterdesign

// CIC fit defaults
const (
	defaultInitialP1 = -3.0
	defaultInitialP2 = 30.0

	minP1 = -10.0
	maxP1 = 0.0
	minP2 = 0.0
	maxP2 = 100.0
)

// FIR design defaults
const (
	// DefaultNumTaps is the filter length used by every preset.
	DefaultNumTaps = 79

	// DefaultNormFreq is the frequency (Hz) normalized to 0 dB.
	DefaultNormFreq = 400.0

	// lowSampleRate selects the short preset tables.
	lowSampleRate = 12000.0
)

// Report precision (decimal places)
const (
	CICPrecision = 4
	FIRPrecision = 9
)

// ADCClock is the sample clock (Hz) ahead of the first CIC stage. It only
// labels sweep results with their output rate.
const ADCClock = 122.88e6

// Shared numeric constants
const (
	halfDivisor = 2.0
	hzPerKHz    = 1000.0
)
