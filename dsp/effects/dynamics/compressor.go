package dynamics

import (
	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeCompressor is the registry tag of Compressor.
const TypeCompressor = "compressor"

const (
	minMakeupDB = 0
	maxMakeupDB = 24
)

var compressorParams = effect.Params{
	effect.Num("threshold_db", -60, 0, -18, "dB"),
	effect.Num("ratio", 1, 20, 4, ":1"),
	effect.Num("attack_ms", 0.1, 100, 10, "ms"),
	effect.Num("release_ms", 10, 1000, 100, "ms"),
	effect.Num("knee_db", 0, 12, 0, "dB"),
	effect.Num("makeup_gain_db", minMakeupDB, maxMakeupDB, 0, "dB"),
	effect.Flag("auto_makeup", false),
}

// Compressor reduces the level of peaks above a threshold.
//
// Gain reduction is computed in dB from the frame peak, smoothed with the
// attack time while it grows and the release time while it shrinks, and
// applied together with the makeup gain.
type Compressor struct {
	effect.Base

	prep effect.Preparation

	thresholdDB float64
	ratio       float64
	attackMs    float64
	releaseMs   float64
	kneeDB      float64
	makeupDB    float64
	autoMakeup  bool

	makeup float64
	env    follower
}

// NewCompressor returns a 4:1 compressor at -18 dB with a hard knee.
func NewCompressor(id string) *Compressor {
	c := &Compressor{}
	c.Init(TypeCompressor, id, compressorParams, c.apply)
	return c
}

func (c *Compressor) apply(name string, v float64) {
	switch name {
	case "threshold_db":
		c.thresholdDB = v
	case "ratio":
		c.ratio = v
	case "attack_ms":
		c.attackMs = v
	case "release_ms":
		c.releaseMs = v
	case "knee_db":
		c.kneeDB = v
	case "makeup_gain_db":
		c.makeupDB = v
	case "auto_makeup":
		c.autoMakeup = v != 0
	}
	c.update()
}

func (c *Compressor) update() {
	c.makeup = core.DBToLinear(c.MakeupDB())
	if c.prep.SampleRate > 0 {
		c.env.setTimes(c.attackMs, c.releaseMs, float64(c.prep.SampleRate))
	}
}

// MakeupDB returns the makeup gain in effect: the manual value, or with
// auto makeup half the reduction a full-scale signal would receive.
func (c *Compressor) MakeupDB() float64 {
	if !c.autoMakeup {
		return c.makeupDB
	}
	estimate := (c.ratio - 1) / c.ratio * -c.thresholdDB
	return core.Clamp(0.5*estimate, minMakeupDB, maxMakeupDB)
}

// GainReductionDB returns the static gain reduction for an input level.
func (c *Compressor) GainReductionDB(inputDB float64) float64 {
	slope := 1 - 1/c.ratio
	if c.kneeDB <= 0 {
		if inputDB <= c.thresholdDB {
			return 0
		}
		return (inputDB - c.thresholdDB) * slope
	}

	kneeStart := c.thresholdDB - c.kneeDB/2
	kneeEnd := c.thresholdDB + c.kneeDB/2
	switch {
	case inputDB < kneeStart:
		return 0
	case inputDB > kneeEnd:
		return (inputDB - c.thresholdDB) * slope
	default:
		pos := (inputDB - kneeStart) / c.kneeDB
		return (inputDB - kneeStart) * pos * pos * slope / 2
	}
}

// Envelope returns the current smoothed gain reduction in dB.
func (c *Compressor) Envelope() float64 { return c.env.value }

// Prepare computes the time constants for sampleRate.
func (c *Compressor) Prepare(sampleRate, maxBlockSize int) error {
	if _, err := c.prep.Update(sampleRate, maxBlockSize); err != nil {
		return err
	}
	c.update()
	return nil
}

// Reset releases all gain reduction.
func (c *Compressor) Reset() { c.env.reset() }

// Process compresses buf in place.
func (c *Compressor) Process(buf *buffer.Buffer) error {
	if err := c.prep.Check(c.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(c.ID(), buf, effect.MaxChannels); err != nil {
		return err
	}

	channels := buf.Channels()
	s := buf.Samples()
	for i := 0; i+channels <= len(s); i += channels {
		frame := s[i : i+channels]
		reduction := c.env.next(c.GainReductionDB(core.LinearToDB(framePeak(frame))))
		scaleFrame(frame, core.DBToLinear(-reduction)*c.makeup)
	}
	return nil
}
