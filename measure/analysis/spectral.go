package analysis

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/window"
	"github.com/cwbudde/nueva/stats/frequency"
)

// MagnitudeAt returns the Hann-windowed level in dB of the FFT bin nearest
// to freq, analysed over the first fftSize frames of buf. Empty buffers
// read -Inf.
func MagnitudeAt(buf *buffer.Buffer, freq float64, fftSize int) float64 {
	s, err := frequency.Analyze(buf, fftSize, window.TypeHann)
	if err != nil {
		return math.Inf(-1)
	}
	return s.MagnitudeDBAt(freq)
}

// SpectralCentroid returns the centroid in Hz of the Hann-windowed spectrum
// of the first fftSize frames, or 0 for an empty buffer.
func SpectralCentroid(buf *buffer.Buffer, fftSize int) float64 {
	s, err := frequency.Analyze(buf, fftSize, window.TypeHann)
	if err != nil {
		return 0
	}
	return s.Centroid()
}
