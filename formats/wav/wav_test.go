package wav

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/nueva/dsp/buffer"
	"github.com/cwbudde/nueva/dsp/core"
	"github.com/cwbudde/nueva/internal/testutil"
)

func stereoFixture(t *testing.T) *buffer.Buffer {
	t.Helper()

	left := testutil.DeterministicSine(440, 44100, 0.8, 2048)
	right := testutil.DeterministicNoise(7, 0.5, 2048)
	buf, err := buffer.New(testutil.Interleave(left, right), 2, 44100)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestSaveLoadFloatRoundTrip(t *testing.T) {
	t.Parallel()

	in := stereoFixture(t)
	path := testutil.TempPath(t, "float.wav")
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Channels() != 2 || out.SampleRate() != 44100 || out.Frames() != in.Frames() {
		t.Fatalf("shape = %d ch, %d Hz, %d frames", out.Channels(), out.SampleRate(), out.Frames())
	}
	testutil.RequireSliceNearlyEqual(t, out.Samples(), in.Samples(), 1e-6)
}

func TestSaveKeepsOutOfRangeFloats(t *testing.T) {
	t.Parallel()

	in, _ := buffer.New([]float32{1.5, -2, 0.25}, 1, 8000)
	path := testutil.TempPath(t, "hot.wav")
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBitIdentical(t, out.Samples(), in.Samples())
}

func TestSaveWithDepthRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		tol   float64
	}{
		{16, 1e-4},
		{24, 1e-6},
		{32, 1e-6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dbit", tt.depth), func(t *testing.T) {
			t.Parallel()

			in := stereoFixture(t)
			path := testutil.TempPath(t, "pcm.wav")
			if err := SaveWithDepth(path, in, tt.depth); err != nil {
				t.Fatalf("SaveWithDepth(%d): %v", tt.depth, err)
			}
			out, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, out.Samples(), in.Samples(), tt.tol)
		})
	}
}

func TestSaveWithDepthClamps(t *testing.T) {
	t.Parallel()

	in, _ := buffer.New([]float32{2, -2, 1, -1}, 1, 48000)
	path := testutil.TempPath(t, "clamp.wav")
	if err := SaveWithDepth(path, in, 16); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := float32(32767.0 / 32768)
	s := out.Samples()
	for i, w := range []float32{want, -want, want, -want} {
		if s[i] != w {
			t.Fatalf("sample %d = %v, want %v", i, s[i], w)
		}
	}
}

func TestSaveWithDepthRejectsOtherDepths(t *testing.T) {
	t.Parallel()

	in, _ := buffer.New([]float32{0}, 1, 48000)
	for _, depth := range []int{0, 8, 20, 64} {
		err := SaveWithDepth(testutil.TempPath(t, "x.wav"), in, depth)
		if !errors.Is(err, core.ErrUnsupportedFormat) {
			t.Fatalf("depth %d: error = %v", depth, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.wav")
	_, err := Load(path)

	var e *core.Error
	if !errors.As(err, &e) || e.Kind != core.KindRead {
		t.Fatalf("Load(missing) error = %v, want read error", err)
	}
	if e.Path != path {
		t.Fatalf("error path = %q, want %q", e.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, "junk.wav", []byte("definitely not a riff header, just text"))
	_, err := Load(path)
	if core.KindOf(err) != core.KindRead {
		t.Fatalf("Load(junk) error = %v", err)
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	t.Parallel()

	in, _ := buffer.New([]float32{0}, 1, 48000)
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.wav")

	err := Save(path, in)
	var e *core.Error
	if !errors.As(err, &e) || e.Kind != core.KindWrite || e.Path != path {
		t.Fatalf("Save error = %v", err)
	}
}

func TestToFloatFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bits   int
		format int
		in     []int
		want   float32
		kind   core.Kind
	}{
		{"pcm8", 8, formatPCM, []int{192}, 0.5, 0},
		{"pcm16", 16, formatPCM, []int{-16384}, -0.5, 0},
		{"pcm24", 24, formatExtensible, []int{1 << 22}, 0.5, 0},
		{"pcm32", 32, formatPCM, []int{1 << 30}, 0.5, 0},
		{"float32", 32, formatFloat, []int{int(int32(math.Float32bits(0.75)))}, 0.75, 0},
		{"float64", 64, formatFloat, []int{0}, 0, core.KindUnsupportedFormat},
		{"pcm12", 12, formatPCM, []int{0}, 0, core.KindUnsupportedFormat},
		{"alaw", 8, 6, []int{0}, 0, core.KindUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloat(tt.in, tt.bits, tt.format)
			if tt.kind != 0 {
				if core.KindOf(err) != tt.kind {
					t.Fatalf("error = %v, want kind %v", err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got[0] != tt.want {
				t.Fatalf("got %v, want %v", got[0], tt.want)
			}
		})
	}
}
