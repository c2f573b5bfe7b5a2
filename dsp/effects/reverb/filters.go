package reverb

import "github.com/cwbudde/nueva/dsp/core"

// ring is a fixed-length recirculating buffer. The sample at the cursor is
// the one written len(buf) steps ago.
type ring struct {
	buf []float64
	pos int
}

func (r *ring) oldest() float64 { return r.buf[r.pos] }

// replace overwrites the oldest sample and advances the cursor.
func (r *ring) replace(x float64) {
	r.buf[r.pos] = x
	if r.pos++; r.pos == len(r.buf) {
		r.pos = 0
	}
}

func (r *ring) clear() {
	clear(r.buf)
	r.pos = 0
}

// allpass is a Schroeder allpass diffuser with a fixed feedback gain.
type allpass struct {
	ring
	gain float64
}

func newAllpass(size int) allpass {
	return allpass{ring: ring{buf: make([]float64, size)}, gain: allpassFeedback}
}

func (a *allpass) process(x float64) float64 {
	delayed := a.oldest()
	a.replace(x + a.gain*delayed)
	return delayed - x
}

func (a *allpass) reset() { a.clear() }

// comb is a feedback comb whose feedback path runs through a one-pole
// low-pass, so high frequencies die away faster than low ones.
type comb struct {
	ring
	feedback float64
	damp     float64
	lp       float64
}

func newComb(size int) comb {
	return comb{ring: ring{buf: make([]float64, size)}}
}

func (c *comb) setDamp(damp float64) { c.damp = damp }

func (c *comb) process(x float64) float64 {
	out := c.oldest()
	c.lp = core.FlushDenormals(out*(1-c.damp) + c.lp*c.damp)
	c.replace(x + c.feedback*c.lp)
	return out
}

func (c *comb) reset() {
	c.clear()
	c.lp = 0
}

// size reports the delay length in samples.
func (c *comb) size() int { return len(c.buf) }
