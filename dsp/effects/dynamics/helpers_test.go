package dynamics

import (
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
)

type preparer interface {
	Prepare(sampleRate, maxBlockSize int) error
}

func prepare(t *testing.T, p preparer, sampleRate int) {
	t.Helper()
	if err := p.Prepare(sampleRate, 1024); err != nil {
		t.Fatalf("Prepare(%d) error = %v", sampleRate, err)
	}
}

func mustBuffer(t testing.TB, samples []float32, channels, rate int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.New(samples, channels, rate)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
