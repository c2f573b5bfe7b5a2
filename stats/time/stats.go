// Package time computes time-domain statistics of sample blocks.
package time

import "math"

// Sample is the element type of a signal: float32 for audio buffers,
// float64 for intermediate data.
type Sample interface {
	~float32 | ~float64
}

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
	Variance       float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass. The mean and variance
// use Welford's update so long DC-heavy signals stay accurate.
func Calculate[S Sample](signal []S) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		mean, m2      float64
		sumSq         float64
		maxVal        = float64(signal[0])
		minVal        = float64(signal[0])
		maxPos        int
		minPos        int
		zeroCrossings int
		prev          float64
	)

	for i, s := range signal {
		x := float64(s)

		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal, maxPos = x, i
		}
		if x < minVal {
			minVal, minPos = x, i
		}

		if i > 0 && prev*x < 0 {
			zeroCrossings++
		}
		prev = x
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = 20 * math.Log10(crest)
	}

	return Stats{
		Length:         n,
		DC:             mean,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Max:            maxVal,
		MaxPos:         maxPos,
		Min:            minVal,
		MinPos:         minPos,
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         sumSq,
		ZeroCrossings:  zeroCrossings,
		Variance:       m2 / nf,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS[S Sample](signal []S) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, s := range signal {
		x := float64(s)
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC[S Sample](signal []S) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation.
	var sum, c float64
	for _, s := range signal {
		y := float64(s) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak[S Sample](signal []S) float64 {
	var peak float64
	for _, s := range signal {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}

	return peak
}

// CrestFactor returns peak / RMS, or 0 for a silent signal.
func CrestFactor[S Sample](signal []S) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// CountAbove returns how many samples have an absolute value at or above
// threshold. The threshold is first rounded to the sample precision, so a
// float32 sample stored as 0.9999 meets a threshold of 0.9999.
func CountAbove[S Sample](signal []S, threshold float64) int {
	limit := float64(S(threshold))
	var count int
	for _, s := range signal {
		if math.Abs(float64(s)) >= limit {
			count++
		}
	}

	return count
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples.
func ZeroCrossings[S Sample](signal []S) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if float64(signal[i-1])*float64(signal[i]) < 0 {
			count++
		}
	}

	return count
}

// Correlation returns the Pearson correlation of a and b over their common
// length, in [-1, 1]. It reports false when either signal has no variance.
func Correlation[S Sample](a, b []S) (float64, bool) {
	n := min(len(a), len(b))
	if n == 0 {
		return 0, false
	}

	var sumA, sumB float64
	for i := range n {
		sumA += float64(a[i])
		sumB += float64(b[i])
	}
	meanA, meanB := sumA/float64(n), sumB/float64(n)

	var cov, varA, varB float64
	for i := range n {
		da := float64(a[i]) - meanA
		db := float64(b[i]) - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0, false
	}

	return math.Max(-1, math.Min(1, cov/math.Sqrt(varA*varB))), true
}
