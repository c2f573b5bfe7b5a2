package delay

import (
	"errors"
	"testing"

	"github.com/cwbudde/nueva/dsp/core"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{-1, 0, maxSize + 1} {
		if _, err := New(size); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("New(%d) error = %v", size, err)
		}
	}
}

func TestReadReturnsDelayedSample(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		d.Write(float64(i))
	}

	tests := []struct {
		delay int
		want  float64
	}{
		{delay: 1, want: 5},
		{delay: 3, want: 3},
		{delay: 5, want: 1},
		{delay: 8, want: 0},
	}
	for _, tt := range tests {
		if got := d.Read(tt.delay); got != tt.want {
			t.Fatalf("Read(%d) = %v, want %v", tt.delay, got, tt.want)
		}
	}
}

func TestReadWrapsAround(t *testing.T) {
	d, _ := New(4)
	for i := 1; i <= 6; i++ {
		d.Write(float64(i))
	}
	if got := d.Read(4); got != 3 {
		t.Fatalf("Read(4) = %v, want 3", got)
	}
	if got := d.Read(1); got != 6 {
		t.Fatalf("Read(1) = %v, want 6", got)
	}
}

func TestResetClears(t *testing.T) {
	d, _ := New(4)
	d.Write(1)
	d.Write(2)
	d.Reset()
	for i := 1; i <= d.Len(); i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("Read(%d) after Reset = %v", i, got)
		}
	}
}
