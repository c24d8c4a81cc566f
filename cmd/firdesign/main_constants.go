package main

// Default command-line flag values
const (
	defaultSampleRate = 48000.0 // Hz
	defaultPreset     = 0       // NFM de-emphasis with LF rolloff
	defaultResponse   = 0       // no response dump
)

// Response dump
const (
	responseFloorDB = -120.0
)

// WAV export
const (
	wavBitDepth  = 32
	wavChannels  = 1
	wavFormatPCM = 1
	maxInt32     = 2147483647.0
)
