// Package delay provides the fixed-size circular buffer behind the echo
// and reverb pre-delay stages.
package delay

import "github.com/cwbudde/nueva/dsp/core"

// maxSize bounds a line at about 87 s of 48 kHz audio.
const maxSize = 1 << 22

// Line stores the most recent Len() samples written to it.
type Line struct {
	buf []float64
	pos int
}

// New returns a zeroed line holding size samples.
func New(size int) (*Line, error) {
	if size < 1 || size > maxSize {
		return nil, core.ParamError("delay_size", float64(size), 1, maxSize)
	}
	return &Line{buf: make([]float64, size)}, nil
}

// Len returns the capacity in samples.
func (l *Line) Len() int { return len(l.buf) }

// Write appends one sample, overwriting the oldest.
func (l *Line) Write(x float64) {
	l.buf[l.pos] = x
	if l.pos++; l.pos == len(l.buf) {
		l.pos = 0
	}
}

// Read returns the sample written n writes ago. Out-of-range n reads the
// oldest sample, the one the next Write replaces.
func (l *Line) Read(n int) float64 {
	if n < 1 || n > len(l.buf) {
		n = len(l.buf)
	}
	i := l.pos - n
	if i < 0 {
		i += len(l.buf)
	}
	return l.buf[i]
}

// Reset zeroes the history.
func (l *Line) Reset() {
	clear(l.buf)
	l.pos = 0
}
