package effects

import (
	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeGain is the registry tag of Gain.
const TypeGain = "gain"

const (
	minGainDB = -96
	maxGainDB = 24
)

var gainParams = effect.Params{
	effect.Num("gain_db", minGainDB, maxGainDB, 0, "dB"),
}

// Gain scales the signal by a fixed amount in dB.
type Gain struct {
	effect.Base

	gainDB float64
	linear float64
}

// NewGain returns a unity gain stage.
func NewGain(id string) *Gain {
	g := &Gain{}
	g.Init(TypeGain, id, gainParams, g.apply)
	return g
}

func (g *Gain) apply(_ string, v float64) {
	g.gainDB = v
	g.linear = core.DBToLinear(v)
}

// GainDB returns the current gain in dB.
func (g *Gain) GainDB() float64 { return g.gainDB }

// SetGainDB is shorthand for SetParam("gain_db", db).
func (g *Gain) SetGainDB(db float64) error { return g.SetParam("gain_db", db) }

// Prepare only validates its arguments; gain keeps no rate-dependent state.
func (g *Gain) Prepare(sampleRate, maxBlockSize int) error {
	return core.ValidatePrepare(sampleRate, maxBlockSize)
}

// Process multiplies every sample by the linear gain. Results that would
// overflow float32 saturate at the largest finite value.
func (g *Gain) Process(buf *buffer.Buffer) error {
	if g.gainDB == 0 {
		return nil
	}
	s := buf.Samples()
	for i, x := range s {
		s[i] = core.ToSample(float64(x) * g.linear)
	}
	return nil
}

// Reset is a no-op.
func (g *Gain) Reset() {}
