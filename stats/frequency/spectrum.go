package frequency

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/window"
)

// DefaultSize is the FFT length Analyze uses when size is not positive.
const DefaultSize = 8192

// Spectrum is the one-sided magnitude spectrum of a buffer mixed to mono.
// Magnitudes are scaled so a full-scale sinusoid centred on a bin reads 1.
type Spectrum struct {
	Magnitude  []float64
	SampleRate float64
	Size       int
}

// Analyze windows the first size frames of buf (zero-padded when the buffer
// is shorter) and returns their spectrum. size is rounded up to a power of
// two.
func Analyze(buf *buffer.Buffer, size int, win window.Type) (*Spectrum, error) {
	if buf.IsEmpty() {
		return nil, &core.Error{Kind: core.KindEmptyBuffer, Detail: "spectrum of an empty buffer"}
	}
	if size <= 0 {
		size = DefaultSize
	}
	n := nextPow2(max(size, 2))
	frames := min(buf.Frames(), n)

	mono := mixdown(buf, frames)
	coeffs := window.Apply(win, mono, window.WithPeriodic())

	in := make([]complex128, n)
	for i, x := range mono {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, core.Wrap(core.KindInvalidParameter, err, "fft plan")
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, core.Wrap(core.KindInvalidParameter, err, "forward fft")
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	if gain := CoherentSum(coeffs); gain > 0 {
		vecmath.ScaleBlock(mag, mag, 2/gain)
		mag[0] /= 2
		mag[bins-1] /= 2
	}

	return &Spectrum{Magnitude: mag, SampleRate: float64(buf.SampleRate()), Size: n}, nil
}

// CoherentSum is the sum of the window coefficients.
func CoherentSum(coeffs []float64) float64 {
	return window.CoherentGain(coeffs) * float64(len(coeffs))
}

func mixdown(buf *buffer.Buffer, frames int) []float64 {
	ch := buf.Channels()
	s := buf.Samples()
	mono := make([]float64, frames)
	for i := range mono {
		var sum float64
		for c := range ch {
			sum += float64(s[i*ch+c])
		}
		mono[i] = sum / float64(ch)
	}
	return mono
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// BinWidth returns the spacing between bins in Hz.
func (s *Spectrum) BinWidth() float64 { return s.SampleRate / float64(s.Size) }

// Frequency returns the centre frequency of bin i.
func (s *Spectrum) Frequency(i int) float64 { return float64(i) * s.BinWidth() }

// Bin returns the index of the bin nearest to freq, clamped to the spectrum.
func (s *Spectrum) Bin(freq float64) int {
	i := int(math.Round(freq / s.BinWidth()))
	return min(max(i, 0), len(s.Magnitude)-1)
}

// MagnitudeAt returns the linear magnitude of the bin nearest to freq.
func (s *Spectrum) MagnitudeAt(freq float64) float64 { return s.Magnitude[s.Bin(freq)] }

// MagnitudeDBAt is MagnitudeAt in dB.
func (s *Spectrum) MagnitudeDBAt(freq float64) float64 { return toDB(s.MagnitudeAt(freq)) }

// Peak returns the frequency and magnitude of the strongest bin above DC.
func (s *Spectrum) Peak() (freq, magnitude float64) {
	best := 1
	for i := 2; i < len(s.Magnitude); i++ {
		if s.Magnitude[i] > s.Magnitude[best] {
			best = i
		}
	}
	return s.Frequency(best), s.Magnitude[best]
}

// Centroid returns the spectral centroid in Hz.
func (s *Spectrum) Centroid() float64 { return Centroid(s.Magnitude, s.SampleRate) }
