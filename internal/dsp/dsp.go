// Package dsp provides the digital filtering primitive used to isolate
// high-frequency content in velocity profiles. The input is treated as a
// uniformly sampled signal; cutoff frequencies are normalized to the Nyquist
// frequency (1.0 = half the sampling rate).
package dsp

// Highpass removes low-frequency content from a signal. Implementations must
// be zero-phase: filtering must not shift features in time.
type Highpass interface {
	Filter(signal []float64) []float64
}
