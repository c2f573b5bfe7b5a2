// Package frequency computes magnitude spectra of audio buffers and the
// spectral descriptors derived from them.
package frequency

import "math"

// toDB converts a linear magnitude to decibels.
// Returns -Inf for zero values.
func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (len(magnitude) - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	var sum, weighted float64
	for i, v := range magnitude {
		sum += v
		weighted += binFreq(i, sampleRate, n) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded. If any considered bin is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// spectral energy lies. A typical fraction is 0.85.
func Rolloff(magnitude []float64, sampleRate float64, fraction float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var energy float64
	for _, v := range magnitude {
		energy += v * v
	}
	if energy == 0 {
		return 0
	}

	threshold := fraction * energy
	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}
