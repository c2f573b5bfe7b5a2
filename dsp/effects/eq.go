package effects

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
	"github.com/cwbudde/nueva/dsp/filter/biquad"
	"github.com/cwbudde/nueva/dsp/filter/design"
)

// TypeEQ is the registry tag of EQ.
const TypeEQ = "eq"

// EQBands is the number of bands of an EQ.
const EQBands = 4

type eqBand struct {
	kind    design.Kind
	freq    float64
	gainDB  float64
	q       float64
	enabled bool

	// active is false when the band cannot change the signal.
	active   bool
	coeffs   biquad.Coefficients
	sections [effect.MaxChannels]biquad.Section
}

var eqParams = func() effect.Params {
	defaults := [EQBands]struct {
		kind design.Kind
		freq float64
	}{
		{design.LowShelfKind, 100},
		{design.PeakKind, 500},
		{design.PeakKind, 2000},
		{design.HighShelfKind, 8000},
	}

	ps := make(effect.Params, 0, EQBands*5)
	for i, d := range defaults {
		prefix := "band" + strconv.Itoa(i+1) + "_"
		ps = append(ps,
			effect.Enum(prefix+"type", int(d.kind), design.KindNames...),
			effect.Num(prefix+"freq", 20, 20000, d.freq, "Hz"),
			effect.Num(prefix+"gain_db", -24, 24, 0, "dB"),
			effect.Num(prefix+"q", 0.1, 10, 0.707, ""),
			effect.Flag(prefix+"enabled", true),
		)
	}
	return ps
}()

// EQ is a four-band parametric equalizer built from RBJ biquads. Each band
// can be a shelf, a peak, or a 12 dB/oct low- or high-pass.
type EQ struct {
	effect.Base

	prep  effect.Preparation
	bands [EQBands]eqBand
}

// NewEQ returns a flat EQ. It must be prepared before use.
func NewEQ(id string) *EQ {
	e := &EQ{}
	e.Init(TypeEQ, id, eqParams, e.apply)
	return e
}

func (e *EQ) apply(name string, v float64) {
	idx, field, ok := splitBandParam(name)
	if !ok {
		return
	}
	b := &e.bands[idx]
	switch field {
	case "type":
		b.kind = design.Kind(v)
	case "freq":
		b.freq = v
	case "gain_db":
		b.gainDB = v
	case "q":
		b.q = v
	case "enabled":
		b.enabled = v != 0
	}
	e.design(idx)
}

func splitBandParam(name string) (int, string, bool) {
	rest, ok := strings.CutPrefix(name, "band")
	if !ok {
		return 0, "", false
	}
	num, field, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, "", false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > EQBands {
		return 0, "", false
	}
	return n - 1, field, true
}

// design recomputes one band's coefficients. Filter state is kept so
// parameter changes do not click.
func (e *EQ) design(idx int) {
	b := &e.bands[idx]
	b.active = b.enabled && (b.gainDB != 0 || b.kind == design.LowpassKind || b.kind == design.HighpassKind)
	if e.prep.SampleRate == 0 {
		return
	}

	sr := float64(e.prep.SampleRate)
	b.coeffs = design.Design(b.kind, math.Min(b.freq, 0.49*sr), b.gainDB, b.q, sr)
	for ch := range b.sections {
		b.sections[ch].Coefficients = b.coeffs
	}
}

// Band describes one band for display.
func (e *EQ) Band(i int) string {
	b := e.bands[i]
	return fmt.Sprintf("%s %.0f Hz %+.1f dB q=%.2f", b.kind, b.freq, b.gainDB, b.q)
}

// Prepare redesigns every band for sampleRate.
func (e *EQ) Prepare(sampleRate, maxBlockSize int) error {
	changed, err := e.prep.Update(sampleRate, maxBlockSize)
	if err != nil {
		return err
	}
	for i := range e.bands {
		e.design(i)
	}
	if changed {
		e.Reset()
	}
	return nil
}

// Reset clears every band's filter history.
func (e *EQ) Reset() {
	for i := range e.bands {
		for ch := range e.bands[i].sections {
			e.bands[i].sections[ch].Reset()
		}
	}
}

// Process filters each channel through the active bands in order.
func (e *EQ) Process(buf *buffer.Buffer) error {
	if err := e.prep.Check(e.ID(), buf); err != nil {
		return err
	}
	if err := effect.CheckChannels(e.ID(), buf, effect.MaxChannels); err != nil {
		return err
	}

	channels := buf.Channels()
	s := buf.Samples()
	for i := range e.bands {
		b := &e.bands[i]
		if !b.active {
			continue
		}
		for j, x := range s {
			s[j] = core.ToSample(b.sections[j%channels].ProcessSample(float64(x)))
		}
	}
	return nil
}
