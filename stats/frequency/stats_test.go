package frequency

import (
	"math"
	"testing"
)

func TestCentroid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mag  []float64
		want float64
	}{
		{"symmetric", []float64{0, 1, 2, 1, 0}, 2000},
		{"dc only", []float64{1, 0, 0, 0, 0}, 0},
		{"nyquist only", []float64{0, 0, 0, 0, 1}, 4000},
		{"silent", []float64{0, 0, 0}, 0},
		{"too short", []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centroid(tt.mag, 8000); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Centroid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlatness(t *testing.T) {
	t.Parallel()

	if f := Flatness([]float64{0, 1, 1, 1, 1}); math.Abs(f-1) > 1e-12 {
		t.Fatalf("flat spectrum = %v", f)
	}
	if f := Flatness([]float64{0, 1, 0, 1}); f != 0 {
		t.Fatalf("spectrum with a zero bin = %v", f)
	}
	if f := Flatness([]float64{0, 10, 0.1, 0.1}); f >= 0.5 {
		t.Fatalf("peaky spectrum = %v", f)
	}
}

func TestRolloff(t *testing.T) {
	t.Parallel()

	if got := Rolloff([]float64{0, 1, 2, 1, 0}, 8000, 0.85); got != 3000 {
		t.Fatalf("Rolloff = %v, want 3000", got)
	}
	if got := Rolloff([]float64{0, 0}, 8000, 0.85); got != 0 {
		t.Fatalf("Rolloff(silent) = %v", got)
	}
}
