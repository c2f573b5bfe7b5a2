// Package analysis verifies rendered audio: level, headroom, clipping, DC
// offset, and stereo phase, plus before/after comparison of two renders.
//
// Levels are in dBFS (0 dB = amplitude 1.0) and are measured over all
// interleaved samples.
package analysis
