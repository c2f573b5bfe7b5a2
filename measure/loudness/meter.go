// Package loudness measures programme loudness in LUFS following
// ITU-R BS.1770 and EBU R128: K-weighting, momentary (400 ms) and
// short-term (3 s) windows, and gated integrated loudness.
package loudness

import (
	"math"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/filter/biquad"
	"github.com/cwbudde/nueva/dsp/filter/design"
)

const (
	shelfFreq   = 1500.0
	shelfGainDB = 4.0
	hpfFreq     = 38.0

	momentarySeconds = 0.4
	shortTermSeconds = 3.0
	// Gating blocks overlap by 75%.
	stepSeconds = 0.1

	absoluteGate = -70.0
	relativeGate = -10.0

	// MinSampleRate is the lowest rate at which the K-weighting filters
	// are defined.
	MinSampleRate = 8000
)

// Result holds the loudness of a finished measurement. Values are -Inf
// when no complete window passed the gates.
type Result struct {
	Integrated   float64
	MaxMomentary float64
	MaxShortTerm float64
}

// window is a running mean square over a fixed number of frames.
type window struct {
	hist   []float64
	idx    int
	filled int
	sum    float64
}

func newWindow(frames int) window {
	return window{hist: make([]float64, max(1, frames))}
}

func (w *window) push(p float64) {
	w.sum += p - w.hist[w.idx]
	w.hist[w.idx] = p
	w.idx = (w.idx + 1) % len(w.hist)
	if w.filled < len(w.hist) {
		w.filled++
	}
}

func (w *window) full() bool { return w.filled == len(w.hist) }

func (w *window) power() float64 {
	if w.filled == 0 {
		return 0
	}
	return math.Max(0, w.sum/float64(w.filled))
}

func (w *window) reset() {
	clear(w.hist)
	w.idx, w.filled, w.sum = 0, 0, 0
}

// Meter accumulates loudness over successive buffers of one layout.
type Meter struct {
	sampleRate int
	channels   int
	weights    []float64

	shelf []biquad.Section
	hpf   []biquad.Section

	momentary window
	shortTerm window
	step      int
	sinceStep int

	blocks       []float64
	maxMomentary float64
	maxShortTerm float64
}

// NewMeter returns a meter for buffers with the given rate and channel count.
func NewMeter(sampleRate, channels int) (*Meter, error) {
	if sampleRate < MinSampleRate {
		return nil, core.ParamError("sample_rate", float64(sampleRate), MinSampleRate, 768000)
	}
	if channels < 1 {
		return nil, core.Errorf(core.KindInvalidBuffer, "loudness needs at least one channel")
	}

	sr := float64(sampleRate)
	shelf := design.HighShelf(shelfFreq, shelfGainDB, 1/math.Sqrt2, sr)
	hpf := design.Highpass(hpfFreq, 1/math.Sqrt2, sr)

	m := &Meter{
		sampleRate: sampleRate,
		channels:   channels,
		weights:    channelWeights(channels),
		shelf:      make([]biquad.Section, channels),
		hpf:        make([]biquad.Section, channels),
		momentary:  newWindow(int(math.Round(momentarySeconds * sr))),
		shortTerm:  newWindow(int(math.Round(shortTermSeconds * sr))),
		step:       max(1, int(math.Round(stepSeconds*sr))),
	}
	for ch := range channels {
		m.shelf[ch].Coefficients = shelf
		m.hpf[ch].Coefficients = hpf
	}
	return m, nil
}

// channelWeights follows BS.1770 for 5.1: the LFE channel is ignored and
// the surrounds count 1.41 times.
func channelWeights(channels int) []float64 {
	w := make([]float64, channels)
	for i := range w {
		w[i] = 1
	}
	if channels == 6 {
		w[3] = 0
		w[4], w[5] = 1.41, 1.41
	}
	return w
}

// Reset discards everything measured so far.
func (m *Meter) Reset() {
	for ch := range m.channels {
		m.shelf[ch].Reset()
		m.hpf[ch].Reset()
	}
	m.momentary.reset()
	m.shortTerm.reset()
	m.sinceStep = 0
	m.blocks = m.blocks[:0]
	m.maxMomentary, m.maxShortTerm = 0, 0
}

// Process adds buf to the measurement.
func (m *Meter) Process(buf *buffer.Buffer) error {
	if buf.SampleRate() != m.sampleRate {
		return &core.Error{Kind: core.KindSampleRateMismatch, Expected: m.sampleRate, Actual: buf.SampleRate()}
	}
	if buf.Channels() != m.channels {
		return &core.Error{Kind: core.KindChannelMismatch, Expected: m.channels, Actual: buf.Channels()}
	}

	s := buf.Samples()
	for i := 0; i+m.channels <= len(s); i += m.channels {
		var p float64
		for ch, x := range s[i : i+m.channels] {
			y := m.hpf[ch].ProcessSample(m.shelf[ch].ProcessSample(float64(x)))
			p += m.weights[ch] * y * y
		}
		m.push(p)
	}
	return nil
}

func (m *Meter) push(p float64) {
	m.momentary.push(p)
	m.shortTerm.push(p)

	m.sinceStep++
	if m.sinceStep < m.step {
		return
	}
	m.sinceStep = 0

	if m.momentary.full() {
		mp := m.momentary.power()
		m.blocks = append(m.blocks, mp)
		m.maxMomentary = math.Max(m.maxMomentary, mp)
	}
	if m.shortTerm.full() {
		m.maxShortTerm = math.Max(m.maxShortTerm, m.shortTerm.power())
	}
}

// Momentary returns the loudness of the last 400 ms.
func (m *Meter) Momentary() float64 { return toLUFS(m.momentary.power()) }

// ShortTerm returns the loudness of the last 3 s.
func (m *Meter) ShortTerm() float64 { return toLUFS(m.shortTerm.power()) }

// Integrated returns the gated loudness of everything processed.
func (m *Meter) Integrated() float64 {
	abs, n := gatedMean(m.blocks, absoluteGate)
	if n == 0 {
		return math.Inf(-1)
	}
	rel, n := gatedMean(m.blocks, toLUFS(abs)+relativeGate)
	if n == 0 {
		return math.Inf(-1)
	}
	return toLUFS(rel)
}

// Result returns the measurement so far.
func (m *Meter) Result() Result {
	return Result{
		Integrated:   m.Integrated(),
		MaxMomentary: toLUFS(m.maxMomentary),
		MaxShortTerm: toLUFS(m.maxShortTerm),
	}
}

// Measure returns the loudness of buf.
func Measure(buf *buffer.Buffer) (Result, error) {
	m, err := NewMeter(buf.SampleRate(), buf.Channels())
	if err != nil {
		return Result{}, err
	}
	if err := m.Process(buf); err != nil {
		return Result{}, err
	}
	return m.Result(), nil
}

func gatedMean(blocks []float64, gate float64) (float64, int) {
	var sum float64
	n := 0
	for _, p := range blocks {
		if toLUFS(p) >= gate {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

func toLUFS(power float64) float64 {
	if power <= 0 {
		return math.Inf(-1)
	}
	return -0.691 + 10*math.Log10(power)
}
