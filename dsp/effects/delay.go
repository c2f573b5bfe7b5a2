package effects

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/delay"
	"github.com/cwbudde/nueva/dsp/effect"
)

// TypeDelay is the registry tag of Delay.
const TypeDelay = "delay"

const (
	minDelayTimeMs = 1
	maxDelayTimeMs = 2000
	maxFeedback    = 0.95
)

var delayParams = effect.Params{
	effect.Num("delay_time_ms", minDelayTimeMs, maxDelayTimeMs, 250, "ms"),
	effect.Num("feedback", 0, maxFeedback, 0.3, ""),
	effect.Num("wet", 0, 1, 0.5, ""),
	effect.Num("dry", 0, 1, 1, ""),
	effect.Flag("ping_pong", false),
	effect.Num("filter_freq", 20, 20000, 8000, "Hz"),
}

// Delay is a feedback echo with a low-pass in the feedback path. Stereo
// buffers can bounce the repeats between channels (ping-pong).
type Delay struct {
	effect.Base

	prep effect.Preparation

	timeMs     float64
	feedback   float64
	wet        float64
	dry        float64
	pingPong   bool
	filterFreq float64

	delaySamples int
	filterCoeff  float64

	lines  [2]*delay.Line
	filter [2]float64
}

// NewDelay returns a 250 ms delay. It must be prepared before use.
func NewDelay(id string) *Delay {
	d := &Delay{}
	d.Init(TypeDelay, id, delayParams, d.apply)
	return d
}

func (d *Delay) apply(name string, v float64) {
	switch name {
	case "delay_time_ms":
		d.timeMs = v
	case "feedback":
		d.feedback = v
	case "wet":
		d.wet = v
	case "dry":
		d.dry = v
	case "ping_pong":
		d.pingPong = v != 0
	case "filter_freq":
		d.filterFreq = v
	}
	d.update()
}

func (d *Delay) update() {
	if d.prep.SampleRate == 0 {
		return
	}
	sr := float64(d.prep.SampleRate)
	d.delaySamples = max(1, core.MsToSamples(d.timeMs, sr))
	fc := math.Min(d.filterFreq, 0.49*sr)
	d.filterCoeff = 1 - math.Exp(-2*math.Pi*fc/sr)
}

// Prepare allocates both lines for the longest delay time at sampleRate.
func (d *Delay) Prepare(sampleRate, maxBlockSize int) error {
	changed, err := d.prep.Update(sampleRate, maxBlockSize)
	if err != nil {
		return err
	}
	if changed {
		size := core.MsToSamples(maxDelayTimeMs, float64(sampleRate)) + 1
		for ch := range d.lines {
			if d.lines[ch], err = delay.New(size); err != nil {
				return err
			}
		}
		d.filter = [2]float64{}
	}
	d.update()
	return nil
}

// Reset clears the delay lines and the feedback filters.
func (d *Delay) Reset() {
	for _, l := range d.lines {
		if l != nil {
			l.Reset()
		}
	}
	d.filter = [2]float64{}
}

// Process echoes mono or stereo buffers in place.
func (d *Delay) Process(buf *buffer.Buffer) error {
	if err := d.prep.Check(d.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(d.ID(), buf, 2); err != nil {
		return err
	}

	s := buf.Samples()
	n := d.delaySamples

	if buf.Channels() == 1 {
		line := d.lines[0]
		for i, x := range s {
			in := float64(x)
			delayed := line.Read(n)
			line.Write(in + d.lowpass(0, delayed*d.feedback))
			s[i] = core.ToSample(in*d.dry + delayed*d.wet)
		}
		return nil
	}

	left, right := d.lines[0], d.lines[1]
	for i := 0; i+1 < len(s); i += 2 {
		inL, inR := float64(s[i]), float64(s[i+1])
		delayedL := left.Read(n)
		delayedR := right.Read(n)

		if d.pingPong {
			left.Write(inL + d.lowpass(0, delayedR*d.feedback))
			right.Write(inR + d.lowpass(1, delayedL*d.feedback))
		} else {
			left.Write(inL + d.lowpass(0, delayedL*d.feedback))
			right.Write(inR + d.lowpass(1, delayedR*d.feedback))
		}

		s[i] = core.ToSample(inL*d.dry + delayedL*d.wet)
		s[i+1] = core.ToSample(inR*d.dry + delayedR*d.wet)
	}
	return nil
}

func (d *Delay) lowpass(ch int, x float64) float64 {
	d.filter[ch] += d.filterCoeff * (x - d.filter[ch])
	d.filter[ch] = core.FlushDenormals(d.filter[ch])
	return d.filter[ch]
}
