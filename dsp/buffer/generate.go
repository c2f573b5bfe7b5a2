package buffer

import (
	"math"
	"math/rand"

	"github.com/cwbudde/nueva/dsp/core"
)

// Sine returns a mono unit-amplitude sine of freqHz lasting seconds.
func Sine(freqHz, seconds float64, sampleRate int) (*Buffer, error) {
	frames, err := frameCount(seconds, sampleRate)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, frames)
	step := 2 * math.Pi * freqHz / float64(sampleRate)
	for i := range samples {
		samples[i] = float32(math.Sin(step * float64(i)))
	}
	return New(samples, 1, sampleRate)
}

// Silence returns a zero-filled buffer of round(seconds*sampleRate) frames.
func Silence(seconds float64, channels, sampleRate int) (*Buffer, error) {
	frames, err := frameCount(seconds, sampleRate)
	if err != nil {
		return nil, err
	}
	return Zeroed(frames, channels, sampleRate)
}

// Noise returns uniform white noise in [-amplitude, amplitude). The same
// seed always yields the same samples.
func Noise(seconds float64, channels, sampleRate int, amplitude float64, seed int64) (*Buffer, error) {
	b, err := Silence(seconds, channels, sampleRate)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range b.samples {
		b.samples[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return b, nil
}

func frameCount(seconds float64, sampleRate int) (int, error) {
	if sampleRate <= 0 {
		return 0, core.Errorf(core.KindInvalidBuffer, "sample rate must be > 0, got %d", sampleRate)
	}
	if seconds < 0 || !core.IsFinite(seconds) {
		return 0, core.Errorf(core.KindInvalidBuffer, "duration must be a finite value >= 0, got %g", seconds)
	}
	return int(math.Round(seconds * float64(sampleRate))), nil
}
