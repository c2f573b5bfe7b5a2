package dynamics

import (
	"math"

	"github.com/cwbudde/nueva/dsp/core"
)

// follower is a one-pole smoother with separate rise and fall times.
type follower struct {
	attack  float64
	release float64
	value   float64
}

func (f *follower) setTimes(attackMs, releaseMs, sampleRate float64) {
	f.attack = core.TimeToCoeff(attackMs, sampleRate)
	f.release = core.TimeToCoeff(releaseMs, sampleRate)
}

// next moves the follower toward target, using the attack coefficient when
// the target is above the current value.
func (f *follower) next(target float64) float64 {
	c := f.release
	if target > f.value {
		c = f.attack
	}
	f.value = core.FlushDenormals(c*f.value + (1-c)*target)
	return f.value
}

func (f *follower) reset() { f.value = 0 }

// framePeak returns the largest finite absolute sample of one interleaved
// frame. Non-finite samples are ignored so they cannot poison the follower.
func framePeak(frame []float32) float64 {
	var peak float64
	for _, x := range frame {
		if a := math.Abs(float64(x)); a > peak && !math.IsInf(a, 0) {
			peak = a
		}
	}
	return peak
}

// scaleFrame multiplies every sample of a frame by gain.
func scaleFrame(frame []float32, gain float64) {
	for i, x := range frame {
		frame[i] = core.ToSample(float64(x) * gain)
	}
}
