package dynamics

import (
	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeGate is the registry tag of Gate.
const TypeGate = "gate"

var gateParams = effect.Params{
	effect.Num("threshold_db", -80, 0, -40, "dB"),
	effect.Num("attack_ms", 0.1, 50, 1, "ms"),
	effect.Num("release_ms", 10, 500, 50, "ms"),
	effect.Num("hold_ms", 0, 100, 10, "ms"),
	effect.Num("range_db", -80, 0, -80, "dB"),
}

// Gate attenuates the signal while its peak stays below a threshold.
//
// The gate opens as soon as a frame reaches the threshold and stays open
// for the hold time after the last such frame. A closed gate attenuates by
// range_db rather than muting.
type Gate struct {
	effect.Base

	prep effect.Preparation

	thresholdDB float64
	attackMs    float64
	releaseMs   float64
	holdMs      float64
	rangeDB     float64

	threshold   float64
	floor       float64
	holdSamples int
	holdLeft    int
	env         follower
}

// NewGate returns a gate at -40 dB with 10 ms hold.
func NewGate(id string) *Gate {
	g := &Gate{}
	g.Init(TypeGate, id, gateParams, g.apply)
	return g
}

func (g *Gate) apply(name string, v float64) {
	switch name {
	case "threshold_db":
		g.thresholdDB = v
	case "attack_ms":
		g.attackMs = v
	case "release_ms":
		g.releaseMs = v
	case "hold_ms":
		g.holdMs = v
	case "range_db":
		g.rangeDB = v
	}
	g.update()
}

func (g *Gate) update() {
	g.threshold = core.DBToLinear(g.thresholdDB)
	g.floor = core.DBToLinear(g.rangeDB)
	if g.prep.SampleRate == 0 {
		return
	}
	sr := float64(g.prep.SampleRate)
	g.env.setTimes(g.attackMs, g.releaseMs, sr)
	g.holdSamples = int(g.holdMs * sr / 1000)
}

// Gain returns the current linear gain of the gate.
func (g *Gate) Gain() float64 { return g.env.value }

// Prepare computes the time constants and hold length for sampleRate.
func (g *Gate) Prepare(sampleRate, maxBlockSize int) error {
	if _, err := g.prep.Update(sampleRate, maxBlockSize); err != nil {
		return err
	}
	g.update()
	return nil
}

// Reset closes the gate and clears the hold counter.
func (g *Gate) Reset() {
	g.env.reset()
	g.holdLeft = 0
}

// Process gates buf in place.
func (g *Gate) Process(buf *buffer.Buffer) error {
	if err := g.prep.Check(g.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(g.ID(), buf, effect.MaxChannels); err != nil {
		return err
	}

	channels := buf.Channels()
	s := buf.Samples()
	for i := 0; i+channels <= len(s); i += channels {
		frame := s[i : i+channels]

		open := true
		switch {
		case framePeak(frame) >= g.threshold:
			g.holdLeft = g.holdSamples
		case g.holdLeft > 0:
			g.holdLeft--
		default:
			open = false
		}

		target := g.floor
		if open {
			target = 1
		}
		scaleFrame(frame, g.env.next(target))
	}
	return nil
}
