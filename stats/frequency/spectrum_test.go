package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/dsp/window"
	"github.com/cwbudde/nueva/internal/testutil"
)

func TestAnalyzeBinCentredSine(t *testing.T) {
	t.Parallel()

	buf, err := buffer.Sine(1024, 1, 8192)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Analyze(buf, 8192, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}
	if s.Size != 8192 || len(s.Magnitude) != 4097 || s.BinWidth() != 1 {
		t.Fatalf("size=%d bins=%d width=%v", s.Size, len(s.Magnitude), s.BinWidth())
	}

	if m := s.MagnitudeAt(1024); math.Abs(m-1) > 1e-3 {
		t.Fatalf("MagnitudeAt(1024) = %v, want 1", m)
	}
	if db := s.MagnitudeDBAt(3000); db > -100 {
		t.Fatalf("MagnitudeDBAt(3000) = %v, want leakage below -100 dB", db)
	}
	if f, _ := s.Peak(); f != 1024 {
		t.Fatalf("Peak() = %v Hz", f)
	}
	if c := s.Centroid(); math.Abs(c-1024) > 5 {
		t.Fatalf("Centroid() = %v", c)
	}
}

func TestAnalyzeRoundsSizeAndPads(t *testing.T) {
	t.Parallel()

	buf, _ := buffer.Sine(440, 0.01, 44100)
	s, err := Analyze(buf, 1000, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}
	if s.Size != 1024 {
		t.Fatalf("Size = %d, want 1024", s.Size)
	}
	if f, _ := s.Peak(); math.Abs(f-440) > 2*s.BinWidth() {
		t.Fatalf("Peak() = %v Hz", f)
	}
}

func TestAnalyzeMixesToMono(t *testing.T) {
	t.Parallel()

	left := testutil.DeterministicSine(1000, 48000, 1, 4096)
	right := make([]float32, len(left))
	for i, x := range left {
		right[i] = -x
	}
	buf, _ := buffer.New(testutil.Interleave(left, right), 2, 48000)

	s, err := Analyze(buf, 4096, window.TypeBlackman)
	if err != nil {
		t.Fatal(err)
	}
	if _, m := s.Peak(); m > 1e-9 {
		t.Fatalf("cancelled stereo peak = %v", m)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	buf, _ := buffer.New(nil, 1, 44100)
	if _, err := Analyze(buf, 0, window.TypeHann); !errors.Is(err, core.ErrEmptyBuffer) {
		t.Fatalf("Analyze(empty) error = %v", err)
	}
}

func TestBinClamps(t *testing.T) {
	t.Parallel()

	s := &Spectrum{Magnitude: make([]float64, 5), SampleRate: 8, Size: 8}
	if s.Bin(-10) != 0 || s.Bin(100) != 4 || s.Bin(2.4) != 2 {
		t.Fatalf("Bin clamping failed: %d %d %d", s.Bin(-10), s.Bin(100), s.Bin(2.4))
	}
}

func BenchmarkAnalyze(b *testing.B) {
	buf, _ := buffer.Sine(997, 1, 48000)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Analyze(buf, DefaultSize, window.TypeHann); err != nil {
			b.Fatal(err)
		}
	}
}
