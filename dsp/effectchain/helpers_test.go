package effectchain

import (
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/effect"
)

// stubEffect records calls and can be told to fail.
type stubEffect struct {
	effect.Base

	log        *[]string
	processErr error
	prepareErr error
	resets     int
	prepared   int
	scale      float32
}

func newStub(id string, log *[]string) *stubEffect {
	s := &stubEffect{log: log, scale: 1}
	s.Init("stub", id, nil, func(string, float64) {})
	return s
}

func (s *stubEffect) Prepare(int, int) error {
	s.prepared++
	return s.prepareErr
}

func (s *stubEffect) Process(buf *buffer.Buffer) error {
	if s.log != nil {
		*s.log = append(*s.log, s.ID())
	}
	if s.processErr != nil {
		return s.processErr
	}
	if s.scale != 1 {
		buf.ApplyGain(s.scale)
	}
	return nil
}

func (s *stubEffect) Reset() { s.resets++ }

func chainOf(fxs ...effect.Effect) *Chain {
	c := New()
	for _, fx := range fxs {
		c.Add(fx)
	}
	return c
}

func requireIDs(t *testing.T, c *Chain, want ...string) {
	t.Helper()
	got := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", got, want)
		}
	}
}

var errBoom = &core.Error{Kind: core.KindChannelMismatch, ID: "boom", Expected: 2, Actual: 3}
