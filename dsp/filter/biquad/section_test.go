package biquad

import (
	"math"
	"testing"
)

func TestIdentityPassesThrough(t *testing.T) {
	s := NewSection(Identity)
	for _, x := range []float64{0.5, -1, 0.25, 0} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("ProcessSample(%v) = %v", x, y)
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.1}
	in := []float64{1, 0, 0, 0.5, -0.25, 0, 0, 0}

	ref := NewSection(c)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	got := append([]float64(nil), in...)
	NewSection(c).ProcessBlock(got)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResetClearsState(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.1}
	s := NewSection(c)
	first := s.ProcessSample(1)
	s.ProcessSample(0.3)
	s.Reset()
	if again := s.ProcessSample(1); again != first {
		t.Fatalf("after Reset got %v, want %v", again, first)
	}
}

func TestMagnitudeOfIdentity(t *testing.T) {
	c := Identity
	if db := c.MagnitudeDB(1000, 48000); math.Abs(db) > 1e-12 {
		t.Fatalf("MagnitudeDB = %v, want 0", db)
	}
}
