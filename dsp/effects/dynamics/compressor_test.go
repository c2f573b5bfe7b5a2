package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/internal/testutil"
)

func TestCompressorGainReductionCurve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kneeDB  float64
		inputDB float64
		want    float64
	}{
		{name: "hard below", inputDB: -30, want: 0},
		{name: "hard at threshold", inputDB: -18, want: 0},
		{name: "hard above", inputDB: -6, want: 9},
		{name: "silence", inputDB: math.Inf(-1), want: 0},
		{name: "soft below knee", kneeDB: 6, inputDB: -21, want: 0},
		{name: "soft at threshold", kneeDB: 6, inputDB: -18, want: 0.28125},
		{name: "soft above knee", kneeDB: 6, inputDB: -14, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompressor("c")
			if err := c.SetParam("knee_db", tt.kneeDB); err != nil {
				t.Fatal(err)
			}
			if got := c.GainReductionDB(tt.inputDB); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("GainReductionDB(%v) = %v, want %v", tt.inputDB, got, tt.want)
			}
		})
	}
}

func TestCompressorBelowThresholdIsTransparent(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	prepare(t, c, 44100)

	input := testutil.DeterministicSine(220, 44100, 0.05, 4410)
	buf := mustBuffer(t, append([]float32(nil), input...), 1, 44100)
	if err := c.Process(buf); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBitIdentical(t, buf.Samples(), input)
}

func TestCompressorSteadyState(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	prepare(t, c, 44100)

	buf := mustBuffer(t, testutil.DC(1, 44100), 1, 44100)
	_ = c.Process(buf)

	// 18 dB over at 4:1 leaves 13.5 dB of reduction.
	want := core.DBToLinear(-13.5)
	if got := float64(buf.Samples()[44099]); math.Abs(got-want) > 1e-4 {
		t.Fatalf("settled output = %v, want %v", got, want)
	}
	if math.Abs(c.Envelope()-13.5) > 1e-3 {
		t.Fatalf("Envelope() = %v", c.Envelope())
	}
}

func TestCompressorAttackIsGradual(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	_ = c.SetParam("attack_ms", 50)
	prepare(t, c, 48000)

	buf := mustBuffer(t, testutil.DC(1, 480), 1, 48000)
	_ = c.Process(buf)

	if first := buf.Samples()[0]; first < 0.99 {
		t.Fatalf("first sample = %v, want almost unity", first)
	}
	if last := buf.Samples()[479]; last >= buf.Samples()[0] {
		t.Fatalf("gain did not fall during attack: %v", last)
	}
}

func TestCompressorLinksChannels(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	prepare(t, c, 44100)

	left := testutil.DC(1, 2048)
	right := testutil.DC(0.1, 2048)
	buf := mustBuffer(t, testutil.Interleave(left, right), 2, 44100)
	_ = c.Process(buf)

	for i := 0; i < buf.Frames(); i += 256 {
		ratio := float64(buf.At(i, 1)) / float64(buf.At(i, 0))
		if math.Abs(ratio-0.1) > 1e-5 {
			t.Fatalf("frame %d: R/L = %v, want 0.1", i, ratio)
		}
	}
}

func TestCompressorMakeup(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	_ = c.SetParam("makeup_gain_db", 3)
	if got := c.MakeupDB(); got != 3 {
		t.Fatalf("manual MakeupDB() = %v", got)
	}

	_ = c.SetParam("auto_makeup", 1)
	if got := c.MakeupDB(); math.Abs(got-6.75) > 1e-12 {
		t.Fatalf("auto MakeupDB() = %v, want 6.75", got)
	}

	_ = c.SetParam("ratio", 1)
	if got := c.MakeupDB(); got != 0 {
		t.Fatalf("auto MakeupDB() at 1:1 = %v", got)
	}
}

func TestCompressorResetClearsEnvelope(t *testing.T) {
	t.Parallel()

	c := NewCompressor("c")
	prepare(t, c, 44100)

	input := testutil.DeterministicNoise(5, 1, 4096)
	a := mustBuffer(t, append([]float32(nil), input...), 2, 44100)
	_ = c.Process(a)
	c.Reset()
	b := mustBuffer(t, append([]float32(nil), input...), 2, 44100)
	_ = c.Process(b)

	testutil.RequireBitIdentical(t, b.Samples(), a.Samples())
}

func TestCompressorRequiresPrepare(t *testing.T) {
	t.Parallel()

	buf := mustBuffer(t, make([]float32, 4), 1, 44100)
	if err := NewCompressor("c").Process(buf); !errors.Is(err, core.ErrNotPrepared) {
		t.Fatalf("Process() error = %v", err)
	}

	c := NewCompressor("c")
	prepare(t, c, 48000)
	if err := c.Process(buf); !errors.Is(err, core.ErrSampleRateMismatch) {
		t.Fatalf("Process() at 44100 error = %v", err)
	}
	if err := c.SetParam("ratio", 21); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("ratio 21 error = %v", err)
	}
}

func BenchmarkCompressorProcessStereo(b *testing.B) {
	c := NewCompressor("c")
	_ = c.Prepare(48000, 1024)

	noise := testutil.DeterministicNoise(1, 1, 2048)
	buf := mustBuffer(b, noise, 2, 48000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Process(buf)
	}
}
