package dynamics

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeLimiter is the registry tag of Limiter.
const TypeLimiter = "limiter"

// limiterAttackMs is fixed; only the release is user-controlled.
const limiterAttackMs = 0.1

var limiterParams = effect.Params{
	effect.Num("ceiling_db", -12, 0, -0.3, "dB"),
	effect.Num("release_ms", 10, 1000, 100, "ms"),
}

// Limiter keeps peaks at or below a ceiling. A smoothed gain reduction does
// most of the work and a final clamp catches what the 0.1 ms attack lets
// through, so no output sample ever exceeds the ceiling.
type Limiter struct {
	effect.Base

	prep effect.Preparation

	ceilingDB float64
	releaseMs float64

	ceiling float64
	env     follower
}

// NewLimiter returns a limiter with a -0.3 dB ceiling.
func NewLimiter(id string) *Limiter {
	l := &Limiter{}
	l.Init(TypeLimiter, id, limiterParams, l.apply)
	return l
}

func (l *Limiter) apply(name string, v float64) {
	switch name {
	case "ceiling_db":
		l.ceilingDB = v
	case "release_ms":
		l.releaseMs = v
	}
	l.update()
}

func (l *Limiter) update() {
	l.ceiling = core.DBToLinear(l.ceilingDB)
	if l.prep.SampleRate > 0 {
		l.env.setTimes(limiterAttackMs, l.releaseMs, float64(l.prep.SampleRate))
	}
}

// Ceiling returns the linear output ceiling.
func (l *Limiter) Ceiling() float64 { return l.ceiling }

// Prepare computes the time constants for sampleRate.
func (l *Limiter) Prepare(sampleRate, maxBlockSize int) error {
	if _, err := l.prep.Update(sampleRate, maxBlockSize); err != nil {
		return err
	}
	l.update()
	return nil
}

// Reset releases all gain reduction.
func (l *Limiter) Reset() { l.env.reset() }

// Process limits buf in place.
func (l *Limiter) Process(buf *buffer.Buffer) error {
	if err := l.prep.Check(l.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(l.ID(), buf, effect.MaxChannels); err != nil {
		return err
	}

	channels := buf.Channels()
	ceiling := float32(l.ceiling)
	s := buf.Samples()
	for i := 0; i+channels <= len(s); i += channels {
		frame := s[i : i+channels]

		var target float64
		if peak := framePeak(frame); peak > l.ceiling {
			target = math.Max(core.LinearToDB(peak)-l.ceilingDB, 0)
		}
		scaleFrame(frame, core.DBToLinear(-l.env.next(target)))

		for j, x := range frame {
			switch {
			case x > ceiling:
				frame[j] = ceiling
			case x < -ceiling:
				frame[j] = -ceiling
			}
		}
	}
	return nil
}
