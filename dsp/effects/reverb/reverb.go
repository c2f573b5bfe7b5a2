package reverb

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/delay"
	"github.com/cwbudde/nueva/dsp/effect"
)

// Type is the registry tag of Reverb.
const Type = "reverb"

const (
	numCombs     = 8
	numAllpasses = 4

	inputGain       = 0.015
	allpassFeedback = 0.5
	scaleRoom       = 0.28
	offsetRoom      = 0.7
	scaleDamp       = 0.4

	// stereoSpread offsets the right channel's delay lengths.
	stereoSpread = 23
	// tuningRate is the sample rate the reference lengths are calibrated for.
	tuningRate = 44100

	maxPreDelayMs = 100
)

var (
	combTuning    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [numAllpasses]int{556, 441, 341, 225}
)

var params = effect.Params{
	effect.Num("room_size", 0, 1, 0.5, ""),
	effect.Num("damping", 0, 1, 0.5, ""),
	effect.Num("wet", 0, 1, 0.3, ""),
	effect.Num("dry", 0, 1, 1, ""),
	effect.Num("width", 0, 1, 1, ""),
	effect.Num("pre_delay_ms", 0, maxPreDelayMs, 0, "ms"),
}

// channelState is the complete signal path of one channel.
type channelState struct {
	combs    [numCombs]comb
	allpass  [numAllpasses]allpass
	preDelay *delay.Line
}

func (s *channelState) reset() {
	for i := range s.combs {
		s.combs[i].reset()
	}
	for i := range s.allpass {
		s.allpass[i].reset()
	}
	s.preDelay.Reset()
}

// process runs one pre-scaled input sample through the channel.
func (s *channelState) process(in float64, preDelay int) float64 {
	if preDelay > 0 {
		delayed := s.preDelay.Read(preDelay)
		s.preDelay.Write(in)
		in = delayed
	}

	var acc float64
	for i := range s.combs {
		acc += s.combs[i].process(in)
	}
	for i := range s.allpass {
		acc = s.allpass[i].process(acc)
	}
	return acc
}

// Reverb is a Freeverb-style stereo reverb for mono or stereo buffers.
type Reverb struct {
	effect.Base

	prep effect.Preparation

	roomSize   float64
	damping    float64
	wet        float64
	dry        float64
	width      float64
	preDelayMs float64

	wet1, wet2     float64
	preDelaySample int

	channels [2]channelState
}

// New returns a reverb with default parameters. It must be prepared before use.
func New(id string) *Reverb {
	r := &Reverb{}
	r.Init(Type, id, params, r.apply)
	return r
}

func (r *Reverb) apply(name string, v float64) {
	switch name {
	case "room_size":
		r.roomSize = v
	case "damping":
		r.damping = v
	case "wet":
		r.wet = v
	case "dry":
		r.dry = v
	case "width":
		r.width = v
	case "pre_delay_ms":
		r.preDelayMs = v
	}
	r.update()
}

// update derives the per-sample coefficients from the public parameters.
func (r *Reverb) update() {
	r.wet1 = (1 + r.width) / 2
	r.wet2 = (1 - r.width) / 2

	feedback := r.roomSize*scaleRoom + offsetRoom
	damp := r.damping * scaleDamp
	for ch := range r.channels {
		for i := range r.channels[ch].combs {
			r.channels[ch].combs[i].feedback = feedback
			r.channels[ch].combs[i].setDamp(damp)
		}
	}

	if r.prep.SampleRate > 0 {
		r.preDelaySample = core.MsToSamples(r.preDelayMs, float64(r.prep.SampleRate))
	}
}

// Prepare sizes every delay buffer for sampleRate. Buffers are rebuilt,
// and therefore cleared, only when the rate changes.
func (r *Reverb) Prepare(sampleRate, maxBlockSize int) error {
	changed, err := r.prep.Update(sampleRate, maxBlockSize)
	if err != nil {
		return err
	}

	if changed {
		preDelaySize := core.MsToSamples(maxPreDelayMs, float64(sampleRate)) + 1
		for ch := range r.channels {
			spread := ch * stereoSpread
			state := &r.channels[ch]
			for i := range state.combs {
				state.combs[i] = newComb(scaledLength(combTuning[i]+spread, sampleRate))
			}
			for i := range state.allpass {
				state.allpass[i] = newAllpass(scaledLength(allpassTuning[i]+spread, sampleRate))
			}
			state.preDelay, err = delay.New(preDelaySize)
			if err != nil {
				return err
			}
		}
	}

	r.update()
	return nil
}

// scaledLength converts a 44.1 kHz reference length to sampleRate.
func scaledLength(reference, sampleRate int) int {
	n := int(math.Round(float64(reference) * float64(sampleRate) / tuningRate))
	if n < 1 {
		n = 1
	}
	return n
}

// Reset clears every comb, allpass and pre-delay buffer.
func (r *Reverb) Reset() {
	if r.prep.SampleRate == 0 {
		return
	}
	for ch := range r.channels {
		r.channels[ch].reset()
	}
}

// Process applies the reverb in place. Mono buffers use the left network
// only; stereo buffers blend the two wet signals according to width.
func (r *Reverb) Process(buf *buffer.Buffer) error {
	if err := r.prep.Check(r.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(r.ID(), buf, 2); err != nil {
		return err
	}

	s := buf.Samples()
	left, right := &r.channels[0], &r.channels[1]

	if buf.Channels() == 1 {
		for i, x := range s {
			dry := float64(x)
			wet := left.process(dry*inputGain, r.preDelaySample)
			s[i] = core.ToSample(dry*r.dry + wet*r.wet)
		}
		return nil
	}

	for i := 0; i+1 < len(s); i += 2 {
		dryL, dryR := float64(s[i]), float64(s[i+1])
		wetL := left.process(dryL*inputGain, r.preDelaySample)
		wetR := right.process(dryR*inputGain, r.preDelaySample)

		outL := wetL*r.wet1 + wetR*r.wet2
		outR := wetR*r.wet1 + wetL*r.wet2

		s[i] = core.ToSample(dryL*r.dry + outL*r.wet)
		s[i+1] = core.ToSample(dryR*r.dry + outR*r.wet)
	}
	return nil
}

// CombLengths reports the prepared comb lengths of channel ch.
func (r *Reverb) CombLengths(ch int) []int {
	out := make([]int, numCombs)
	for i := range r.channels[ch].combs {
		out[i] = r.channels[ch].combs[i].size()
	}
	return out
}
