package effects

import (
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
)

func mustBuffer(t *testing.T, samples []float32, channels, rate int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.New(samples, channels, rate)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func sine(t *testing.T, freq float64, rate int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.Sine(freq, 1, rate)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
