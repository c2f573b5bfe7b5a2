package loudness

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/internal/testutil"
)

const rate = 48000

func sineBuffer(t *testing.T, amp, seconds float64, channels int) *buffer.Buffer {
	t.Helper()
	mono := testutil.DeterministicSine(1000, rate, amp, int(seconds*rate))
	chans := make([][]float32, channels)
	for i := range chans {
		chans[i] = mono
	}
	buf, err := buffer.New(testutil.Interleave(chans...), channels, rate)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

// A full-scale 1 kHz sine has a mean square of 0.5 and the K-weighting
// lifts 1 kHz by about 0.67 dB, so mono reads near -3.03 LUFS.
func TestMeasureSine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float64
	}{
		{"mono", 1, -3.03},
		{"stereo", 2, -0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Measure(sineBuffer(t, 1, 4, tt.channels))
			if err != nil {
				t.Fatal(err)
			}
			for name, got := range map[string]float64{
				"integrated": res.Integrated,
				"momentary":  res.MaxMomentary,
				"short-term": res.MaxShortTerm,
			} {
				if math.Abs(got-tt.want) > 0.2 {
					t.Errorf("%s = %.3f LUFS, want %.2f", name, got, tt.want)
				}
			}
		})
	}
}

func TestGatingIgnoresQuietTail(t *testing.T) {
	t.Parallel()

	m, err := NewMeter(rate, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Process(sineBuffer(t, 1, 10, 1)); err != nil {
		t.Fatal(err)
	}
	loud := m.Integrated()

	if err := m.Process(sineBuffer(t, 1e-4, 10, 1)); err != nil {
		t.Fatal(err)
	}
	if got := m.Integrated(); math.Abs(got-loud) > 0.1 {
		t.Fatalf("integrated moved from %.3f to %.3f", loud, got)
	}
	if got := m.Momentary(); got > -70 {
		t.Fatalf("momentary after quiet tail = %.1f", got)
	}
}

func TestMeasureSilence(t *testing.T) {
	t.Parallel()

	buf, err := buffer.Silence(2, 2, rate)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Measure(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(res.Integrated, -1) || !math.IsInf(res.MaxMomentary, -1) || !math.IsInf(res.MaxShortTerm, -1) {
		t.Fatalf("silence = %+v", res)
	}
}

func TestShortInputHasNoBlocks(t *testing.T) {
	t.Parallel()

	res, err := Measure(sineBuffer(t, 1, 0.3, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(res.Integrated, -1) {
		t.Fatalf("integrated over 300 ms = %.2f", res.Integrated)
	}
}

func TestProcessIsBlockInvariant(t *testing.T) {
	t.Parallel()

	whole := sineBuffer(t, 0.5, 5, 2)
	want, err := Measure(whole)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewMeter(rate, 2)
	if err != nil {
		t.Fatal(err)
	}
	const block = 1000
	for start := 0; start < whole.Frames(); start += block {
		if err := m.Process(whole.Slice(start, min(start+block, whole.Frames()))); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Result(); got != want {
		t.Fatalf("blockwise %+v, whole %+v", got, want)
	}

	m.Reset()
	if got := m.Integrated(); !math.IsInf(got, -1) {
		t.Fatalf("integrated after Reset = %.2f", got)
	}
}

func TestLFEIsIgnored(t *testing.T) {
	t.Parallel()

	frames := 2 * rate
	s := make([]float32, 6*frames)
	tone := testutil.DeterministicSine(1000, rate, 1, frames)
	for i, x := range tone {
		s[i*6+3] = x
	}
	buf, err := buffer.New(s, 6, rate)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Measure(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(res.Integrated, -1) {
		t.Fatalf("LFE-only integrated = %.2f", res.Integrated)
	}
}

func TestMeterErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewMeter(4000, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("NewMeter(4000) error = %v", err)
	}
	if _, err := NewMeter(rate, 0); !errors.Is(err, core.ErrInvalidBuffer) {
		t.Fatalf("NewMeter(channels 0) error = %v", err)
	}

	m, err := NewMeter(rate, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Process(sineBuffer(t, 1, 0.1, 1)); !errors.Is(err, core.ErrChannelMismatch) {
		t.Fatalf("mono into stereo meter: %v", err)
	}
	other, err := buffer.Silence(0.1, 2, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Process(other); !errors.Is(err, core.ErrSampleRateMismatch) {
		t.Fatalf("44.1 kHz into 48 kHz meter: %v", err)
	}
}

func BenchmarkMeterProcess(b *testing.B) {
	buf, err := buffer.Noise(1, 2, rate, 0.5, 1)
	if err != nil {
		b.Fatal(err)
	}
	m, err := NewMeter(rate, 2)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(buf.Len() * 4))
	for b.Loop() {
		if err := m.Process(buf); err != nil {
			b.Fatal(err)
		}
	}
}
